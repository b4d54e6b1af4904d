// Package filter narrows canonical records by week, conference and game status.
package filter

import "github.com/omarshaarawi/gridiron/internal/models"

// Filterable is a record that exposes the facets a filter can test. A record
// without a facet (ok == false or nil keys) is not constrained by it.
type Filterable interface {
	SeasonWeek() (week int, ok bool)
	ConferenceKeys() []string
	GameStatus() (status models.GameStatus, ok bool)
}

// Apply returns the records that satisfy every criterion, keeping input order.
// With no criterion set the input slice is returned as is.
func Apply[T Filterable](records []T, criteria models.FilterCriteria) []T {
	if !criteria.HasWeek() && !criteria.HasConference() && !criteria.HasStatus() {
		return records
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(r, criteria) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies criteria.
func Matches(r Filterable, criteria models.FilterCriteria) bool {
	return matchWeek(r, criteria) && matchConference(r, criteria) && matchStatus(r, criteria)
}

func matchWeek(r Filterable, criteria models.FilterCriteria) bool {
	if !criteria.HasWeek() {
		return true
	}
	week, ok := r.SeasonWeek()
	if !ok {
		return true
	}
	return week == criteria.Week
}

// A game counts for a conference when either side belongs to it.
func matchConference(r Filterable, criteria models.FilterCriteria) bool {
	if !criteria.HasConference() {
		return true
	}
	keys := r.ConferenceKeys()
	if keys == nil {
		return true
	}
	for _, k := range keys {
		if k == criteria.Conference {
			return true
		}
	}
	return false
}

func matchStatus(r Filterable, criteria models.FilterCriteria) bool {
	if !criteria.HasStatus() {
		return true
	}
	status, ok := r.GameStatus()
	if !ok {
		return true
	}
	return status == criteria.Status
}

// Conferences lists the selector options for records: All first, then every
// distinct non-empty conference in first-seen order.
func Conferences[T Filterable](records []T) []string {
	out := []string{models.All}
	seen := map[string]struct{}{}
	for _, r := range records {
		for _, k := range r.ConferenceKeys() {
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
