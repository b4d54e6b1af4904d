// Package season maps calendar dates to college-football season weeks.
package season

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	startMonth = time.August
	startDay   = 23
	endMonth   = time.December
	endDay     = 13

	FirstWeek = 1
	LastWeek  = 16
)

// Start returns the first day of the season in year.
func Start(year int) time.Time {
	return time.Date(year, startMonth, startDay, 0, 0, 0, 0, time.UTC)
}

// End returns the last scheduled day of the regular season in year.
func End(year int) time.Time {
	return time.Date(year, endMonth, endDay, 0, 0, 0, 0, time.UTC)
}

// CurrentWeek returns the season week containing today. Dates before the
// season starts resolve to week 1. After Dec 13 the count keeps growing
// past LastWeek (Dec 13 itself is week 17).
func CurrentWeek(today time.Time) int {
	if today.Month() < startMonth {
		return FirstWeek
	}

	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(date.Sub(Start(today.Year())).Hours() / 24)
	if days < 0 {
		return FirstWeek
	}
	return days/7 + 1
}

// Resolver answers CurrentWeek against a clock.
type Resolver struct {
	clock clockwork.Clock
}

func NewResolver(clock clockwork.Clock) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{clock: clock}
}

func (r *Resolver) CurrentWeek() int {
	return CurrentWeek(r.clock.Now())
}

// InSeason reports whether now falls between season start and end, inclusive.
func (r *Resolver) InSeason() bool {
	now := r.clock.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !date.Before(Start(now.Year())) && !date.After(End(now.Year()))
}

// Year is the season year of the clock's current date.
func (r *Resolver) Year() int {
	return r.clock.Now().Year()
}
