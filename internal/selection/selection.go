// Package selection filters and orders catalog entries against combinable
// trigger predicates, an inclusive time window, and an optional most-recent-N
// cap. Selection is a pure transformation of its inputs with fixed ordering
// rules that downstream automation depends on byte-for-byte.
package selection

import (
	"sort"
	"strings"
	"time"

	"camctl/internal/catalog"
	"camctl/internal/services"
	"camctl/internal/trigger"
)

// Predicate decides which trigger sets match. The zero value is the
// unfiltered predicate, which matches every entry; construct filtered
// predicates with AnyOf. "No flags selected" and "match everything" are the
// same thing here, which keeps the empty-set/match-all distinction out of
// caller hands entirely: an entry's empty trigger set never matches a
// filtered predicate, while an unfiltered predicate matches it fine.
type Predicate struct {
	flags    trigger.Set
	filtered bool
}

// Unfiltered returns the predicate that matches all entries.
func Unfiltered() Predicate {
	return Predicate{}
}

// AnyOf returns a predicate matching entries that carry at least one of the
// given flags. An empty set yields the unfiltered predicate, matching the
// device contract that selecting no flags means no filter.
func AnyOf(flags trigger.Set) Predicate {
	if flags.IsEmpty() {
		return Unfiltered()
	}
	return Predicate{flags: flags, filtered: true}
}

// IsUnfiltered reports whether the predicate matches everything.
func (p Predicate) IsUnfiltered() bool {
	return !p.filtered
}

// Matches reports whether a trigger set satisfies the predicate. Filtered
// predicates use OR semantics: any shared flag is a match, extra flags on the
// entry do not disqualify it.
func (p Predicate) Matches(set trigger.Set) bool {
	if !p.filtered {
		return true
	}
	return set.Intersects(p.flags)
}

func (p Predicate) String() string {
	if !p.filtered {
		return "all types"
	}
	return strings.Join(p.flags.Names(), ", ")
}

// Criteria is the input contract for Select.
type Criteria struct {
	Predicate   Predicate
	WindowStart time.Time
	WindowEnd   time.Time
	// Limit caps the result to the N most recent entries. nil means
	// unbounded; zero is a legal cap that yields an empty result.
	Limit *int
}

// Validate rejects criteria that violate the caller contract. It runs before
// any filtering; criteria problems are configuration errors, not data-quality
// issues, and always fail the call.
func (c Criteria) Validate() error {
	if c.WindowEnd.Before(c.WindowStart) {
		return services.Wrap(services.ErrValidation, "selection", "validate criteria", "window end precedes window start", nil)
	}
	if c.Limit != nil && *c.Limit < 0 {
		return services.Wrap(services.ErrValidation, "selection", "validate criteria", "limit must not be negative", nil)
	}
	return nil
}

// Select applies the criteria to entries in a fixed order: time window first,
// trigger predicate second, recency cap last.
//
// The window is inclusive on both ends and evaluates start times only; an
// entry extending past the window end still qualifies. When a limit is set
// the survivors are sorted by start time descending (ties broken by catalog
// order, stable) and the result is most-recent-first; otherwise the upstream
// catalog order is preserved.
func Select(entries []catalog.Entry, criteria Criteria) ([]catalog.Entry, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	kept := make([]catalog.Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Start.Before(criteria.WindowStart) || entry.Start.After(criteria.WindowEnd) {
			continue
		}
		if !criteria.Predicate.Matches(entry.Triggers) {
			continue
		}
		kept = append(kept, entry)
	}

	if criteria.Limit == nil {
		return kept, nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Start.After(kept[j].Start)
	})
	if *criteria.Limit < len(kept) {
		kept = kept[:*criteria.Limit]
	}
	return kept, nil
}
