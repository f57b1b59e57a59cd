package dayrange

import (
	"errors"
	"time"
)

var (
	// ErrInvalidStay is returned when checkout is not strictly after checkin.
	ErrInvalidStay = errors.New("dayrange: checkout must be after checkin")
	// ErrInvalidDay is returned when a textual day cannot be parsed.
	ErrInvalidDay = errors.New("dayrange: day must use the 2006-01-02 format")
)

// Layout is the canonical textual form of a Day.
const Layout = "2006-01-02"

// Day is a calendar date with no time-of-day component. Two Days compare
// equal when they name the same calendar day, regardless of the clock value
// they were built from.
type Day struct {
	t time.Time
}

// NewDay builds a Day from its calendar parts.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	t = t.UTC()
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay reads the 2006-01-02 form.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Day{}, ErrInvalidDay
	}
	return DayOf(t), nil
}

func (d Day) Time() time.Time   { return d.t }
func (d Day) String() string    { return d.t.Format(Layout) }
func (d Day) IsZero() bool      { return d.t.IsZero() }
func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }

// Next returns the following calendar day.
func (d Day) Next() Day {
	return Day{t: d.t.AddDate(0, 0, 1)}
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDay
	}
	parsed, err := ParseDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Expand lists every day from start to end inclusive, ascending. A start
// after the end yields an empty slice, not an error: callers treat "no
// days" as nothing to do.
func Expand(start, end Day) []Day {
	if start.After(end) {
		return nil
	}
	days := make([]Day, 0, end.t.Sub(start.t)/(24*time.Hour)+1)
	for d := start; !d.After(end); d = d.Next() {
		days = append(days, d)
	}
	return days
}

// Dedup collapses duplicate days in place, keeping the first occurrence of
// each day in input order.
func Dedup(days []Day) []Day {
	if len(days) < 2 {
		return days
	}
	seen := make(map[Day]struct{}, len(days))
	out := days[:0]
	for _, d := range days {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Stay is a half-open interval [CheckIn, CheckOut): the guest departs on
// the checkout day, so that day itself needs no availability.
type Stay struct {
	CheckIn  Day
	CheckOut Day
}

// NewStay validates that the interval covers at least one night.
func NewStay(checkIn, checkOut Day) (Stay, error) {
	if !checkOut.After(checkIn) {
		return Stay{}, ErrInvalidStay
	}
	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Nights expands the stay into the days that must be open, excluding the
// checkout day.
func (s Stay) Nights() []Day {
	last := Day{t: s.CheckOut.t.AddDate(0, 0, -1)}
	return Expand(s.CheckIn, last)
}
