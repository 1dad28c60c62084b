package reconcile

import (
	"errors"
	"fmt"

	"licensee-matcher/core/table"

	"go.uber.org/zap"
)

// Inputs are the normalized tables of one track.
type Inputs struct {
	// Source is the normalized licensing dataset (left side).
	Source *table.Table

	// Report is the authority report (right side).
	Report *table.Table

	// ReportBatches optionally streams the report in chunks for address
	// tiers. When nil, Report is used whole.
	ReportBatches table.Source
}

// Results maps result keys to consolidated tables, remembering tier order.
type Results struct {
	// Track is the track the results belong to.
	Track Track

	// Keys lists result keys in tier order. Failed tiers are absent.
	Keys []string

	// Tables holds the consolidated table of every key.
	Tables map[string]*table.Table

	// Tiers maps every key to the 1-based tier index it came from.
	Tiers map[string]int
}

// ResultKey names the result set of the i-th tier (0-based).
func ResultKey(i int, tier Tier) string {
	return fmt.Sprintf("%d_%s", i+1, tier.Name)
}

// Object names the stored file of a result key under prefix.
func Object(prefix, key string) string {
	if prefix == "" {
		return key + ".csv"
	}
	return prefix + "/" + key + ".csv"
}

// Aggregator runs every tier of a track and consolidates the results.
// It holds no state between runs.
type Aggregator struct {
	merges []Merge
	logger *zap.Logger
}

// NewAggregator creates an aggregator applying merges to every tier result.
// A nil logger discards output; nil merges use DefaultMerges.
func NewAggregator(merges []Merge, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if merges == nil {
		merges = DefaultMerges
	}
	return &Aggregator{merges: merges, logger: logger}
}

// Run executes the track's tiers in order. Tiers are independent: a row pair
// may appear in several results. A tier that fails is left out of the results
// and its error joined into the returned error; the other tiers still run.
func (a *Aggregator) Run(track Track, in Inputs) (*Results, error) {
	res := &Results{
		Track:  track,
		Tables: make(map[string]*table.Table, len(track.Tiers)),
		Tiers:  make(map[string]int, len(track.Tiers)),
	}
	whole := table.FromTable(in.Report)

	var errs []error
	for i, tier := range track.Tiers {
		key := ResultKey(i, tier)
		l := a.logger.With(zap.String("track", track.Name), zap.String("tier", key))

		right := whole
		if tier.DedupAddress && in.ReportBatches != nil {
			right = in.ReportBatches
		}

		matched, err := MatchTier(tier, in.Source, right)
		if err != nil {
			l.Error("Tier failed", zap.Error(err))
			errs = append(errs, err)
			continue
		}

		consolidated, warnings := Consolidate(matched, a.merges)
		for _, w := range warnings {
			l.Warn("Column left unconsolidated", zap.Error(w))
		}

		l.Debug("Tier matched", zap.Int("rows", consolidated.Len()), zap.Int("columns", consolidated.Width()))
		res.Keys = append(res.Keys, key)
		res.Tables[key] = consolidated
		res.Tiers[key] = i + 1
	}

	return res, errors.Join(errs...)
}
