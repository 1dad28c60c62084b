package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"licensee-matcher/core/table"
)

var (
	// ErrTierKeyMissing indicates that a source lacks a column of a tier's key set.
	ErrTierKeyMissing = errors.New("tier key missing")

	// ErrMixedKinds indicates that the variants of a consolidated column mix text and numbers.
	ErrMixedKinds = errors.New("mixed column kinds")

	// ErrResultMissing indicates that a tier result needed for combining is unavailable.
	ErrResultMissing = errors.New("tier result missing")
)

// Side identifies one input of a join.
type Side string

const (
	// SideSource is the licensing dataset (left side).
	SideSource Side = "fairtrade"
	// SideReport is the authority report (right side).
	SideReport Side = "reinsw"
)

// TierKeyMissingError reports that a tier could not run because one of its
// inputs lacks key columns.
type TierKeyMissingError struct {
	Tier    string
	Side    Side
	Missing []string
}

// Error implements the error interface.
func (e *TierKeyMissingError) Error() string {
	return fmt.Sprintf("tier %s: %s source is missing key columns [%s]", e.Tier, e.Side, strings.Join(e.Missing, ", "))
}

// Is implements errors.Is support.
func (e *TierKeyMissingError) Is(target error) bool {
	return target == ErrTierKeyMissing
}

// ConsolidationError reports a column whose variants could not be merged.
// It is never fatal: the variant columns are kept as they are.
type ConsolidationError struct {
	Column   string
	Variants []string
	Kinds    []table.Kind
}

// Error implements the error interface.
func (e *ConsolidationError) Error() string {
	kinds := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		kinds[i] = e.Variants[i] + ":" + k.String()
	}
	return fmt.Sprintf("cannot consolidate %s: variants mix text and numbers (%s)", e.Column, strings.Join(kinds, ", "))
}

// Is implements errors.Is support.
func (e *ConsolidationError) Is(target error) bool {
	return target == ErrMixedKinds
}

// DuplicateColumnError reports a join whose output would hold two columns
// with the same name.
type DuplicateColumnError struct {
	Column string
}

// Error implements the error interface.
func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("join would produce duplicate column %s", e.Column)
}
