package engine

import (
	"sort"
	"time"

	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
)

// DefaultBreakThreshold is the minimum gap between segments that
// counts as a break. Shorter blips are noise, not rest.
const DefaultBreakThreshold = time.Minute

// flatSegment is a segment reduced to what gap arithmetic needs.
type flatSegment struct {
	start    time.Time
	end      time.Time
	hardStop bool
}

// flatten collects every segment of every session, deleted ones
// included: a deleted span still occupies time and therefore still
// closes the gaps around it, even though it counts as neither work
// nor break itself.
func flatten(sessions []*models.Session, now time.Time) []flatSegment {
	var flat []flatSegment

	for _, sess := range sessions {
		for _, seg := range sess.Segments {
			flat = append(flat, flatSegment{
				start:    seg.Start,
				end:      seg.EndOr(now),
				hardStop: seg.StopReason == models.StopHard,
			})
		}
	}

	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].start.Before(flat[j].start)
	})

	return flat
}

// BreakTime sums the qualifying gaps between the segments of the
// given sessions, merged and sorted across session boundaries.
//
// A gap qualifies when all of the following hold:
//   - it is strictly positive (overlapping or touching segments have
//     no gap),
//   - both endpoints fall on the same adjusted day for dayStartHour,
//   - it is at least threshold long (the bound is inclusive), and
//   - the preceding segment was not a hard stop.
//
// A threshold <= 0 falls back to DefaultBreakThreshold.
func BreakTime(
	sessions []*models.Session,
	threshold time.Duration,
	dayStartHour int,
	now time.Time,
) time.Duration {
	if threshold <= 0 {
		threshold = DefaultBreakThreshold
	}

	flat := flatten(sessions, now)

	var total time.Duration

	for i := 0; i < len(flat)-1; i++ {
		current, next := flat[i], flat[i+1]

		gap := next.start.Sub(current.end)
		if gap <= 0 {
			continue
		}

		if !timeutil.SameAdjustedDay(current.end, next.start, dayStartHour) {
			continue
		}

		if gap < threshold {
			continue
		}

		if current.hardStop {
			continue
		}

		total += gap
	}

	return total
}

// BreakCount counts the pauses recorded across the given sessions:
// each session contributes one break per segment boundary. This
// deliberately includes deleted segments and sub-threshold pauses; the
// focus score depends on this count, so it matches the recorded
// segment structure rather than BreakTime's qualifying rules.
func BreakCount(sessions []*models.Session) int {
	var count int

	for _, sess := range sessions {
		if n := len(sess.Segments) - 1; n > 0 {
			count += n
		}
	}

	return count
}
