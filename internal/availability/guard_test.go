package availability

import (
	"errors"
	"testing"
	"time"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBlocked(t *testing.T) {
	t.Parallel()

	ranges := []BlockedRange{
		{StartDate: day(2025, time.January, 10), EndDate: day(2025, time.January, 15)},
		{StartDate: day(2025, time.February, 1), EndDate: day(2025, time.February, 1)},
	}

	cases := []struct {
		name    string
		day     time.Time
		blocked bool
	}{
		{"before first range", day(2025, time.January, 9), false},
		{"first day inclusive", day(2025, time.January, 10), true},
		{"inside range", day(2025, time.January, 12), true},
		{"last day inclusive", day(2025, time.January, 15), true},
		{"after range", day(2025, time.January, 16), false},
		{"single day range", day(2025, time.February, 1), true},
		{"time of day ignored", time.Date(2025, time.January, 15, 23, 59, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBlocked(ranges, tc.day); got != tc.blocked {
				t.Fatalf("IsBlocked(%s) = %v, want %v", tc.day.Format(dayFormat), got, tc.blocked)
			}
		})
	}
}

func TestValidateRangeRejectsOverlapWithBlock(t *testing.T) {
	t.Parallel()

	ranges := []BlockedRange{
		{StartDate: day(2025, time.January, 10), EndDate: day(2025, time.January, 15)},
	}

	err := ValidateRange(ranges, day(2025, time.January, 12), day(2025, time.January, 20))
	var blocked RangeBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected RangeBlockedError, got %v", err)
	}
	if !blocked.BlockedDay.Equal(day(2025, time.January, 12)) {
		t.Fatalf("expected first blocked day 2025-01-12, got %s", blocked.BlockedDay.Format(dayFormat))
	}
}

func TestValidateRangeAllowsAdjacentRange(t *testing.T) {
	t.Parallel()

	ranges := []BlockedRange{
		{StartDate: day(2025, time.January, 10), EndDate: day(2025, time.January, 15)},
	}

	if err := ValidateRange(ranges, day(2025, time.January, 16), day(2025, time.January, 20)); err != nil {
		t.Fatalf("range starting the day after a block must pass, got %v", err)
	}
	if err := ValidateRange(ranges, day(2025, time.January, 5), day(2025, time.January, 9)); err != nil {
		t.Fatalf("range ending the day before a block must pass, got %v", err)
	}
}

func TestValidateRangeInvertedRange(t *testing.T) {
	t.Parallel()

	err := ValidateRange(nil, day(2025, time.March, 10), day(2025, time.March, 5))
	var inverted InvalidRangeError
	if !errors.As(err, &inverted) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}

func TestValidateRangeSingleDay(t *testing.T) {
	t.Parallel()

	ranges := []BlockedRange{
		{StartDate: day(2025, time.January, 10), EndDate: day(2025, time.January, 10)},
	}
	if err := ValidateRange(ranges, day(2025, time.January, 10), day(2025, time.January, 10)); err == nil {
		t.Fatalf("single blocked day must fail its own range")
	}
	if err := ValidateRange(ranges, day(2025, time.January, 11), day(2025, time.January, 11)); err != nil {
		t.Fatalf("single free day must pass, got %v", err)
	}
}

func TestValidateDuration(t *testing.T) {
	t.Parallel()

	// 5 inclusive days against a 7 day minimum.
	err := ValidateDuration(7, day(2025, time.April, 1), day(2025, time.April, 5))
	var short MinimumDurationError
	if !errors.As(err, &short) {
		t.Fatalf("expected MinimumDurationError, got %v", err)
	}
	if short.Required != 7 || short.Requested != 5 {
		t.Fatalf("expected required 7 requested 5, got %+v", short)
	}

	// Exactly 7 inclusive days passes.
	if err := ValidateDuration(7, day(2025, time.April, 1), day(2025, time.April, 7)); err != nil {
		t.Fatalf("exact minimum must pass, got %v", err)
	}
}

func TestValidateDurationDefaultsMinimum(t *testing.T) {
	t.Parallel()

	// Zero minimum falls back to the 7 day default.
	err := ValidateDuration(0, day(2025, time.April, 1), day(2025, time.April, 3))
	var short MinimumDurationError
	if !errors.As(err, &short) {
		t.Fatalf("expected MinimumDurationError, got %v", err)
	}
	if short.Required != DefaultMinRentalDays {
		t.Fatalf("expected default minimum %d, got %d", DefaultMinRentalDays, short.Required)
	}

	if err := ValidateDuration(0, day(2025, time.April, 1), day(2025, time.April, 7)); err != nil {
		t.Fatalf("week long booking meets the default minimum, got %v", err)
	}
}

func TestValidateDurationInvertedRange(t *testing.T) {
	t.Parallel()

	var inverted InvalidRangeError
	if err := ValidateDuration(7, day(2025, time.April, 5), day(2025, time.April, 1)); !errors.As(err, &inverted) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}
