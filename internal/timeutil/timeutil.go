// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

const minutesInAnHour = 60

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period180Days   Period = "180days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period180Days:   -179,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period180Days,
	Period365Days,
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// DayFormat expresses a time value as a sortable YYYYMMDD integer.
func DayFormat(t time.Time) int {
	d := fmt.Sprintf("%d%02d%02d", t.Year(), t.Month(), t.Day())

	i, _ := strconv.Atoi(d)

	return i
}

// AdjustedDay returns the calendar day that contains t when days are
// considered to start at startHour instead of midnight. A day runs
// from startHour:00 to the next day's startHour:00, so 01:00 with a
// start hour of 6 still belongs to the previous date.
func AdjustedDay(t time.Time, startHour int) int {
	return DayFormat(t.Add(-time.Duration(startHour) * time.Hour))
}

// SameAdjustedDay reports whether a and b fall on the same adjusted
// day for the given start hour.
func SameAdjustedDay(a, b time.Time, startHour int) bool {
	return AdjustedDay(a, startHour) == AdjustedDay(b, startHour)
}

// AdjustedDayStart returns the instant the adjusted day containing t
// begins.
func AdjustedDayStart(t time.Time, startHour int) time.Time {
	shifted := t.Add(-time.Duration(startHour) * time.Hour)

	return RoundToStart(shifted).Add(time.Duration(startHour) * time.Hour)
}

// FormatDuration renders a duration as HH:MM:SS. Hours are not capped
// at 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSecs := int(d.Seconds())
	hrs := totalSecs / 3600
	mins := (totalSecs % 3600) / 60
	secs := totalSecs % 60

	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}

// FormatDurationHM renders a duration compactly, e.g. "1h 5m" or "45m".
func FormatDurationHM(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalMins := int(d.Minutes())
	hrs, mins := MinsToHoursAndMins(totalMins)

	if hrs == 0 && mins == 0 {
		return "0m"
	}

	if hrs == 0 {
		return fmt.Sprintf("%dm", mins)
	}

	return fmt.Sprintf("%dh %dm", hrs, mins)
}
