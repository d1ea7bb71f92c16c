package timeutil

import (
	"testing"
	"time"
)

func TestAdjustedDay(t *testing.T) {
	cases := []struct {
		name      string
		t         time.Time
		startHour int
		expected  int
	}{
		{
			name:      "midnight boundary with zero start hour",
			t:         time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			startHour: 0,
			expected:  20240313,
		},
		{
			name:      "early morning belongs to previous day",
			t:         time.Date(2024, 3, 13, 1, 0, 0, 0, time.UTC),
			startHour: 6,
			expected:  20240312,
		},
		{
			name:      "start hour itself opens the new day",
			t:         time.Date(2024, 3, 13, 6, 0, 0, 0, time.UTC),
			startHour: 6,
			expected:  20240313,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AdjustedDay(tc.t, tc.startHour); got != tc.expected {
				t.Errorf("Expected day to be: %d, but got: %d", tc.expected, got)
			}
		})
	}
}

func TestSameAdjustedDay(t *testing.T) {
	before := time.Date(2024, 3, 12, 23, 50, 0, 0, time.UTC)
	after := time.Date(2024, 3, 13, 0, 10, 0, 0, time.UTC)

	if SameAdjustedDay(before, after, 0) {
		t.Error("Expected 23:50 and 00:10 to differ with a midnight day start")
	}

	if !SameAdjustedDay(before, after, 6) {
		t.Error("Expected 23:50 and 00:10 to match with a 06:00 day start")
	}
}

func TestAdjustedDayStart(t *testing.T) {
	ts := time.Date(2024, 3, 13, 1, 0, 0, 0, time.UTC)

	got := AdjustedDayStart(ts, 6)
	expected := time.Date(2024, 3, 12, 6, 0, 0, 0, time.UTC)

	if !got.Equal(expected) {
		t.Errorf("Expected day start to be: %v, but got: %v", expected, got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d        time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{90 * time.Minute, "01:30:00"},
		{25*time.Hour + 5*time.Second, "25:00:05"},
		{-time.Minute, "00:00:00"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.d); got != tc.expected {
			t.Errorf(
				"Expected %v to format as: %s, but got: %s",
				tc.d,
				tc.expected,
				got,
			)
		}
	}
}

func TestFormatDurationHM(t *testing.T) {
	cases := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0m"},
		{45 * time.Minute, "45m"},
		{65 * time.Minute, "1h 5m"},
		{2 * time.Hour, "2h 0m"},
	}

	for _, tc := range cases {
		if got := FormatDurationHM(tc.d); got != tc.expected {
			t.Errorf(
				"Expected %v to format as: %s, but got: %s",
				tc.d,
				tc.expected,
				got,
			)
		}
	}
}

func TestDayFormat(t *testing.T) {
	ts := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	if got := DayFormat(ts); got != 20240105 {
		t.Errorf("Expected day format to be: 20240105, but got: %d", got)
	}
}
