package reconcile

import (
	"errors"
	"fmt"

	"licensee-matcher/core/table"
)

// CombinedTrack describes the combined result sets, one per tier, named
// "result_on_" plus the tier shorthand.
func CombinedTrack(prefix string) Track {
	var names [7]string
	for i, s := range Shorthands {
		names[i] = "result_on_" + s
	}
	return NewTrack("combined", prefix, names)
}

// Combine stacks the same-tier results of the individual and certificate
// tracks into the result sets of track (see CombinedTrack), individual rows
// first. Both slices are index-aligned with the tiers. A nil entry marks an
// unavailable result: that tier is skipped and reported in the returned
// error while the others are still combined.
func Combine(track Track, individual, certificate []*table.Table) (*Results, error) {
	if len(individual) != len(track.Tiers) || len(certificate) != len(track.Tiers) {
		return nil, fmt.Errorf("combine: expected %d results per track, got %d individual and %d certificate",
			len(track.Tiers), len(individual), len(certificate))
	}

	res := &Results{
		Track:  track,
		Tables: make(map[string]*table.Table, len(track.Tiers)),
		Tiers:  make(map[string]int, len(track.Tiers)),
	}
	var errs []error
	for i, tier := range track.Tiers {
		key := ResultKey(i, tier)
		if individual[i] == nil || certificate[i] == nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, ErrResultMissing))
			continue
		}
		res.Keys = append(res.Keys, key)
		res.Tables[key] = table.Concat(individual[i], certificate[i])
		res.Tiers[key] = i + 1
	}
	return res, errors.Join(errs...)
}
