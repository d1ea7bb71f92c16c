package engine

import (
	"time"

	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
)

// maxBucketDays bounds a single summary walk. Ranges longer than a
// year are clipped rather than iterated.
const maxBucketDays = 366

// DayBucket aggregates one adjusted day of activity. Sessions belong
// to the day they were created on, so work that runs past the day
// boundary stays attributed to its starting day.
type DayBucket struct {
	// Day is the sortable YYYYMMDD key of the adjusted day.
	Day int
	// Date is the calendar date backing Day, at midnight.
	Date time.Time

	Work         time.Duration
	Break        time.Duration
	SessionCount int
	BreakCount   int
	FocusIndex   int
}

// Total returns the combined work and break time of the bucket.
func (b DayBucket) Total() time.Duration {
	return b.Work + b.Break
}

// Averages holds per-active-day means across a summarised range.
type Averages struct {
	Work       time.Duration
	Break      time.Duration
	Sessions   float64
	Breaks     float64
	FocusIndex int
}

// RangeSummary is the aggregate view over a date range: one bucket
// per calendar day plus range-wide totals and averages.
//
// Averages divide by the number of days that recorded any work, not
// by the length of the range; idle days never dilute them. Break time
// is the one exception on the totals side: it accumulates across all
// days, matching how the per-day break sum is independent of whether
// surviving (non-deleted) work remains on that day.
type RangeSummary struct {
	Buckets []DayBucket

	TotalWork    time.Duration
	TotalBreak   time.Duration
	SessionCount int
	BreakCount   int
	ActiveDays   int

	Avg Averages
}

// SummarizeOptions parameterises a range aggregation.
type SummarizeOptions struct {
	// Start and End bound the range, inclusive on both adjusted days.
	Start time.Time
	End   time.Time

	// GroupID filters the aggregated sessions; models.GroupAll or
	// empty aggregates everything.
	GroupID string

	DayStartHour   int
	BreakThreshold time.Duration
}

// Summarize buckets the given sessions into per-day aggregates over
// [opts.Start, opts.End] and derives range totals. Trashed sessions
// are excluded entirely; deleted segments follow the usual rules of
// TotalDuration, BreakTime, and BreakCount.
func Summarize(
	sessions []*models.Session,
	opts SummarizeOptions,
	now time.Time,
) RangeSummary {
	filterActive := opts.GroupID != "" && opts.GroupID != models.GroupAll

	byDay := make(map[int][]*models.Session)

	for _, sess := range sessions {
		if sess.Trashed() {
			continue
		}

		if filterActive && sess.GroupID != opts.GroupID {
			continue
		}

		day := timeutil.AdjustedDay(sess.CreatedAt, opts.DayStartHour)
		byDay[day] = append(byDay[day], sess)
	}

	var summary RangeSummary

	var focusSum int

	date := timeutil.RoundToStart(opts.Start)
	last := opts.End

	for i := 0; !date.After(last) && i < maxBucketDays; i++ {
		day := timeutil.DayFormat(date)
		daySessions := byDay[day]

		bucket := DayBucket{Day: day, Date: date}

		for _, sess := range daySessions {
			bucket.Work += TotalDuration(sess.Segments, now)
		}

		bucket.Break = BreakTime(
			daySessions,
			opts.BreakThreshold,
			opts.DayStartHour,
			now,
		)
		bucket.SessionCount = len(daySessions)
		bucket.BreakCount = BreakCount(daySessions)
		bucket.FocusIndex = FocusIndex(
			bucket.Work,
			bucket.Break,
			bucket.BreakCount,
		)

		if bucket.Work > 0 {
			summary.ActiveDays++
			summary.TotalWork += bucket.Work
			summary.SessionCount += bucket.SessionCount
			summary.BreakCount += bucket.BreakCount
			focusSum += bucket.FocusIndex
		}

		summary.TotalBreak += bucket.Break

		summary.Buckets = append(summary.Buckets, bucket)

		date = date.AddDate(0, 0, 1)
	}

	divisor := summary.ActiveDays
	if divisor == 0 {
		divisor = 1
	}

	summary.Avg = Averages{
		Work:       summary.TotalWork / time.Duration(divisor),
		Break:      summary.TotalBreak / time.Duration(divisor),
		Sessions:   float64(summary.SessionCount) / float64(divisor),
		Breaks:     float64(summary.BreakCount) / float64(divisor),
		FocusIndex: roundDiv(focusSum, divisor),
	}

	return summary
}

func roundDiv(sum, n int) int {
	if n == 0 {
		return 0
	}

	return (sum + n/2) / n
}
