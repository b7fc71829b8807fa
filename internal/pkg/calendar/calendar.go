// Package calendar classifies civil days for the reconciliation engine.
// All day arithmetic is pinned to one timezone so the server clock and the
// attendance data never disagree about which day it is.
package calendar

import "time"

const DefaultTimezone = "Asia/Ho_Chi_Minh"

// Policy is a pure, stateless day classifier bound to a fixed location.
type Policy struct {
	loc *time.Location
}

func NewPolicy(loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{loc: loc}
}

func (p Policy) Location() *time.Location {
	return p.loc
}

// NormalizeToDay truncates a timestamp to midnight of its civil day in the
// policy timezone. It returns a new value; inputs are never mutated. Two
// timestamps on the same civil day normalize to the same key.
func (p Policy) NormalizeToDay(t time.Time) time.Time {
	local := t.In(p.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.loc)
}

// IsBusinessDay returns false on Saturday and Sunday in the policy
// timezone. Public holidays are not modeled; a holiday counts as an
// ordinary business day unless a leave request covers it.
func (p Policy) IsBusinessDay(t time.Time) bool {
	switch t.In(p.loc).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// At places a wall-clock time of day on the civil day of t.
func (p Policy) At(t time.Time, hour, minute int) time.Time {
	local := t.In(p.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, p.loc)
}

// InclusiveDays counts whole days in [start, end] including both endpoints.
// Returns 0 when end is before start or either bound is the zero value, so
// one malformed historical record never fails a whole computation.
func InclusiveDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
