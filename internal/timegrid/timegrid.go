package timegrid

import (
	"errors"
	"time"
)

// DefaultIntervalMin is the slot grid used when the salon has no override.
const DefaultIntervalMin = 15

var ErrPastDayEnd = errors.New("rounded time falls past end of day")

// Interval is a half-open [Start, End) range on a single day.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Minutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// RoundToInterval rounds the clock portion of t to the nearest multiple of
// intervalMin, half-up on minutes since midnight. Rounding that would land
// on or past the next day is an error, never a wrap.
func RoundToInterval(t time.Time, intervalMin int) (time.Time, error) {
	if intervalMin <= 0 {
		intervalMin = DefaultIntervalMin
	}

	mins := t.Hour()*60 + t.Minute()
	rounded := ((mins + intervalMin/2) / intervalMin) * intervalMin

	if rounded >= 24*60 {
		return time.Time{}, ErrPastDayEnd
	}

	return time.Date(
		t.Year(), t.Month(), t.Day(),
		rounded/60, rounded%60, 0, 0,
		t.Location(),
	), nil
}

// Boundaries walks from start in fixed steps of intervalMin and emits every
// [cur, cur+step) that still fits before end. A trailing partial interval is
// dropped, not truncated.
func Boundaries(start, end time.Time, intervalMin int) []Interval {
	if intervalMin <= 0 {
		intervalMin = DefaultIntervalMin
	}

	step := time.Duration(intervalMin) * time.Minute

	var out []Interval
	for cur := start; !cur.Add(step).After(end); cur = cur.Add(step) {
		out = append(out, Interval{Start: cur, End: cur.Add(step)})
	}
	return out
}

// Overlaps reports whether the half-open intervals a and b intersect.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Contains reports whether inner lies fully within outer.
func Contains(outer, inner Interval) bool {
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End)
}
