package engine

import (
	"testing"
	"time"

	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
)

func TestSummarize(t *testing.T) {
	now := at(72, 0)

	day2 := testDay.AddDate(0, 0, 1)

	sessions := []*models.Session{
		// Day one: 90 minutes of work across two segments, one
		// 30-minute break.
		newSession("a", "Alpha", "",
			seg(at(9, 0), at(10, 0)),
			seg(at(10, 30), at(11, 0)),
		),
		// Day two: one solid hour.
		newSession("b", "Beta", "",
			seg(day2.Add(9*time.Hour), day2.Add(10*time.Hour)),
		),
	}

	got := Summarize(sessions, SummarizeOptions{
		Start: testDay,
		End:   testDay.AddDate(0, 0, 2),
	}, now)

	if len(got.Buckets) != 3 {
		t.Fatalf("Expected 3 buckets, but got: %d", len(got.Buckets))
	}

	first := got.Buckets[0]
	if first.Day != timeutil.DayFormat(testDay) {
		t.Errorf("Expected first bucket day key %d, got: %d",
			timeutil.DayFormat(testDay), first.Day)
	}

	if first.Work != 90*time.Minute {
		t.Errorf(
			"Expected day one work to be: %v, but got: %v",
			90*time.Minute,
			first.Work,
		)
	}

	if first.Break != 30*time.Minute {
		t.Errorf(
			"Expected day one break to be: %v, but got: %v",
			30*time.Minute,
			first.Break,
		)
	}

	if first.BreakCount != 1 || first.SessionCount != 1 {
		t.Errorf(
			"Expected one break and one session on day one, got: %d and %d",
			first.BreakCount,
			first.SessionCount,
		)
	}

	second := got.Buckets[1]
	if second.Work != time.Hour || second.Break != 0 {
		t.Errorf(
			"Expected day two to hold 1h work and no break, got: %v and %v",
			second.Work,
			second.Break,
		)
	}

	// The empty third day must not dilute the averages.
	if got.ActiveDays != 2 {
		t.Errorf("Expected 2 active days, but got: %d", got.ActiveDays)
	}

	if got.TotalWork != 150*time.Minute {
		t.Errorf(
			"Expected total work to be: %v, but got: %v",
			150*time.Minute,
			got.TotalWork,
		)
	}

	if got.Avg.Work != 75*time.Minute {
		t.Errorf(
			"Expected average work to be: %v, but got: %v",
			75*time.Minute,
			got.Avg.Work,
		)
	}

	if got.Avg.Sessions != 1 {
		t.Errorf(
			"Expected average session count to be 1, but got: %v",
			got.Avg.Sessions,
		)
	}
}

func TestSummarizeEmptyRange(t *testing.T) {
	got := Summarize(nil, SummarizeOptions{
		Start: testDay,
		End:   testDay.AddDate(0, 0, 6),
	}, at(12, 0))

	if got.ActiveDays != 0 || got.TotalWork != 0 {
		t.Errorf(
			"Expected an empty summary, got %d active days and %v work",
			got.ActiveDays,
			got.TotalWork,
		)
	}

	if len(got.Buckets) != 7 {
		t.Errorf("Expected 7 empty buckets, but got: %d", len(got.Buckets))
	}

	if got.Avg.Work != 0 || got.Avg.FocusIndex != 0 {
		t.Errorf(
			"Expected zero averages, got work %v and focus %d",
			got.Avg.Work,
			got.Avg.FocusIndex,
		)
	}
}

func TestSummarizeGroupFilter(t *testing.T) {
	now := at(24, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "g1", seg(at(9, 0), at(10, 0))),
		newSession("b", "Beta", "g2", seg(at(11, 0), at(12, 0))),
	}

	got := Summarize(sessions, SummarizeOptions{
		Start:   testDay,
		End:     testDay,
		GroupID: "g1",
	}, now)

	if got.TotalWork != time.Hour {
		t.Errorf(
			"Expected filtered work to be: %v, but got: %v",
			time.Hour,
			got.TotalWork,
		)
	}

	if got.SessionCount != 1 {
		t.Errorf("Expected 1 session, but got: %d", got.SessionCount)
	}
}

func TestSummarizeExcludesTrashed(t *testing.T) {
	now := at(24, 0)

	trashed := newSession("a", "Alpha", "", seg(at(9, 0), at(10, 0)))
	trashed.DeletedAt = at(11, 0)

	got := Summarize([]*models.Session{trashed}, SummarizeOptions{
		Start: testDay,
		End:   testDay,
	}, now)

	if got.TotalWork != 0 || got.ActiveDays != 0 {
		t.Errorf(
			"Expected trashed sessions to be ignored, got %v work over %d days",
			got.TotalWork,
			got.ActiveDays,
		)
	}
}

func TestSummarizeAdjustedDayAttribution(t *testing.T) {
	now := at(48, 0)

	// Created at 01:00 with a 06:00 day start: the session belongs to
	// the previous adjusted day.
	late := newSession("a", "Night shift", "",
		seg(at(25, 0), at(26, 0)),
	)

	got := Summarize([]*models.Session{late}, SummarizeOptions{
		Start:        testDay,
		End:          testDay.AddDate(0, 0, 1),
		DayStartHour: 6,
	}, now)

	if got.Buckets[0].Work != time.Hour {
		t.Errorf(
			"Expected the 01:00 session on the first adjusted day, got: %v",
			got.Buckets[0].Work,
		)
	}

	if got.Buckets[1].Work != 0 {
		t.Errorf(
			"Expected the second day to be empty, got: %v",
			got.Buckets[1].Work,
		)
	}
}
