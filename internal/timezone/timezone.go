package timezone

import "time"

// All scheduling math runs in one fixed operating timezone.
const OperatingTimezone = "Asia/Kolkata"

func Location() *time.Location {
	loc, err := time.LoadLocation(OperatingTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// DateOf truncates t to midnight of its calendar day in the operating
// timezone.
func DateOf(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location())
}

func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
