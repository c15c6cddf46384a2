// Package daterange holds the inclusive [From, To] window a dashboard is
// computed over, and the rules for turning a user-proposed window into one.
//
// A normalized range always satisfies From <= To and spans fewer than
// MaxRangeDays calendar days when both bounds were supplied. A zero From
// means "no lower bound".
package daterange

import (
	"fmt"
	"time"
)

// MaxRangeDays is the largest span, in days, a dashboard may cover.
const MaxRangeDays = 60

// WireLayout is the backend's date format (yyyy/MM/dd).
const WireLayout = "2006/01/02"

// DayLayout is the format accepted on query strings (yyyy-MM-dd).
const DayLayout = "2006-01-02"

// DateRange is a normalized, inclusive window.
type DateRange struct {
	From time.Time // zero: unbounded
	To   time.Time
}

// Candidate is a user-proposed window. Either bound may be nil.
type Candidate struct {
	From *time.Time
	To   *time.Time
}

// Normalize turns a candidate into a DateRange.
//
//   - nil candidate: nil (no range selected)
//   - missing To: the start of now's day, in now's location
//   - missing From: unbounded
//   - missing To and From after today: From = To
//   - both present and From > To: swapped
//   - both present and span >= MaxRangeDays: To = From + MaxRangeDays-1 days
func Normalize(c *Candidate, now time.Time) *DateRange {
	if c == nil {
		return nil
	}

	r := &DateRange{To: StartOfDay(now)}
	if c.To != nil {
		r.To = *c.To
	}
	if c.From == nil {
		return r
	}
	r.From = *c.From

	if c.To == nil {
		if SpanDays(r.From, r.To) < 0 {
			r.From = r.To
		}
		return r
	}

	if r.From.After(r.To) {
		r.From, r.To = r.To, r.From
	}
	if SpanDays(r.From, r.To) >= MaxRangeDays {
		r.To = r.From.AddDate(0, 0, MaxRangeDays-1)
	}
	return r
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SpanDays returns the number of calendar days from a to b, evaluated in a's
// location. It is negative when b is before a.
func SpanDays(a, b time.Time) int {
	b = b.In(a.Location())
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Unbounded reports whether the range has no lower bound.
func (r *DateRange) Unbounded() bool {
	return r == nil || r.From.IsZero()
}

// Params returns the request parameters for the backend. Absent bounds
// are returned as empty strings so callers can omit them.
func (r *DateRange) Params() (startDate, endDate string) {
	if r == nil {
		return "", ""
	}
	if !r.From.IsZero() {
		startDate = r.From.Format(WireLayout)
	}
	if !r.To.IsZero() {
		endDate = r.To.Format(WireLayout)
	}
	return startDate, endDate
}

// String is used in logs.
func (r *DateRange) String() string {
	if r == nil {
		return "none"
	}
	from, to := r.Params()
	if from == "" {
		from = "…"
	}
	return fmt.Sprintf("%s-%s", from, to)
}

// Equal compares two ranges by instant. Two nil ranges are equal.
func Equal(a, b *DateRange) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.From.Equal(b.From) && a.To.Equal(b.To)
}

// ParseDay parses a yyyy-MM-dd query value in loc. An empty value yields nil.
func ParseDay(v string, loc *time.Location) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DayLayout, v, loc)
	if err != nil {
		return nil, fmt.Errorf("parse day %q: %w", v, err)
	}
	return &t, nil
}
