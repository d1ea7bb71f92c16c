package config

import (
	"testing"
	"time"

	"github.com/flowtimer/flow/internal/timeutil"
)

func TestGetTimeRange(t *testing.T) {
	now := time.Now()

	cases := []struct {
		period        timeutil.Period
		expectedStart time.Time
	}{
		{timeutil.PeriodToday, timeutil.RoundToStart(now)},
		{
			timeutil.Period7Days,
			timeutil.RoundToStart(now.AddDate(0, 0, -6)),
		},
		{
			timeutil.Period30Days,
			timeutil.RoundToStart(now.AddDate(0, 0, -29)),
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			start, end := getTimeRange(tc.period)

			if !start.Equal(tc.expectedStart) {
				t.Errorf(
					"Expected start to be: %v, but got: %v",
					tc.expectedStart,
					start,
				)
			}

			if end.Before(start) {
				t.Errorf("Expected end %v to be after start %v", end, start)
			}
		})
	}
}

func TestGetTimeRangeAllTime(t *testing.T) {
	start, _ := getTimeRange(timeutil.PeriodAllTime)
	if !start.IsZero() {
		t.Errorf("Expected an unbounded start, but got: %v", start)
	}
}

func TestGetTimeRangeYesterday(t *testing.T) {
	start, end := getTimeRange(timeutil.PeriodYesterday)

	if !timeutil.RoundToStart(start).Equal(start) {
		t.Errorf("Expected start at midnight, but got: %v", start)
	}

	if end.Day() != start.Day() {
		t.Errorf("Expected end on the same day, got: %v and %v", start, end)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		input    string
		expected time.Duration
	}{
		{"1m", time.Minute},
		{"90s", 90 * time.Second},
		{"2", 2 * time.Minute},
	}

	for _, tc := range cases {
		got, err := parseDuration(tc.input)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if got != tc.expected {
			t.Errorf(
				"Expected %q to parse as: %v, but got: %v",
				tc.input,
				tc.expected,
				got,
			)
		}
	}

	if _, err := parseDuration("bogus"); err == nil {
		t.Error("Expected an error for an invalid duration")
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-03-12")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 12 {
		t.Errorf("Expected 2024-03-12, but got: %v", got)
	}
}
