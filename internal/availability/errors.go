package availability

import (
	"fmt"
	"time"
)

// InvalidRangeError reports an end date preceding the start date.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("end date %s precedes start date %s", e.End.Format(dayFormat), e.Start.Format(dayFormat))
}

// RangeBlockedError reports the first blocked day found inside a requested
// range, so callers can show the exact conflicting date.
type RangeBlockedError struct {
	BlockedDay time.Time
}

func (e RangeBlockedError) Error() string {
	return fmt.Sprintf("panel is blocked on %s", e.BlockedDay.Format(dayFormat))
}

// MinimumDurationError reports a range shorter than the panel's minimum
// rental period.
type MinimumDurationError struct {
	Required  int
	Requested int
}

func (e MinimumDurationError) Error() string {
	return fmt.Sprintf("rental must cover at least %d days, requested %d", e.Required, e.Requested)
}

const dayFormat = "2006-01-02"
