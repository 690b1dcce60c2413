package availability

import "time"

// DefaultMinRentalDays applies when a panel does not configure its own
// minimum rental period.
const DefaultMinRentalDays = 7

// BlockedRange is an inclusive, day-granular interval during which a panel
// cannot be rented. Overlapping ranges are read as a union of blocked days.
type BlockedRange struct {
	StartDate time.Time
	EndDate   time.Time
}

// IsBlocked reports whether the day falls inside any blocked range.
func IsBlocked(ranges []BlockedRange, day time.Time) bool {
	d := truncateDay(day)
	for _, r := range ranges {
		if !d.Before(truncateDay(r.StartDate)) && !d.After(truncateDay(r.EndDate)) {
			return true
		}
	}
	return false
}

// ValidateRange walks every day from start to end inclusive and fails fast
// on the first blocked day. An inverted range is rejected before any block
// check runs.
func ValidateRange(ranges []BlockedRange, start, end time.Time) error {
	s, e := truncateDay(start), truncateDay(end)
	if e.Before(s) {
		return InvalidRangeError{Start: s, End: e}
	}
	for day := s; !day.After(e); day = day.AddDate(0, 0, 1) {
		if IsBlocked(ranges, day) {
			return RangeBlockedError{BlockedDay: day}
		}
	}
	return nil
}

// ValidateDuration checks the inclusive day count against the panel's
// minimum rental period. Non-positive minimums fall back to the default.
func ValidateDuration(minRentalDays int, start, end time.Time) error {
	s, e := truncateDay(start), truncateDay(end)
	if e.Before(s) {
		return InvalidRangeError{Start: s, End: e}
	}
	required := minRentalDays
	if required <= 0 {
		required = DefaultMinRentalDays
	}
	requested := int(e.Sub(s).Hours()/24) + 1
	if requested < required {
		return MinimumDurationError{Required: required, Requested: requested}
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
