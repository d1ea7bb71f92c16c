// Package engine derives durations, break totals, focus scores, day
// aggregates, and renderable timelines from raw session data. Every
// function is pure: it reads the collections and the explicit now
// argument, and never mutates its inputs or touches the clock or the
// store. Callers who need several figures to agree (e.g. a duration
// and a focus score rendered together) must capture now once and pass
// the same value to each call.
package engine

import (
	"time"

	"github.com/flowtimer/flow/internal/models"
)

// TotalDuration sums the live work time across segments. Deleted
// segments (including removed-gap markers) are excluded, and an open
// segment is treated as running until now. Malformed spans with a
// negative duration contribute zero.
func TotalDuration(segments []models.TimeSegment, now time.Time) time.Duration {
	var total time.Duration

	for _, seg := range segments {
		if seg.Deleted() {
			continue
		}

		if d := seg.EndOr(now).Sub(seg.Start); d > 0 {
			total += d
		}
	}

	return total
}

// SessionsDuration sums TotalDuration over several sessions.
func SessionsDuration(sessions []*models.Session, now time.Time) time.Duration {
	var total time.Duration

	for _, sess := range sessions {
		total += TotalDuration(sess.Segments, now)
	}

	return total
}

// LongestStretch returns the duration of the single longest live
// segment across the given sessions.
func LongestStretch(sessions []*models.Session, now time.Time) time.Duration {
	var longest time.Duration

	for _, sess := range sessions {
		for _, seg := range sess.Segments {
			if seg.Deleted() {
				continue
			}

			if d := seg.EndOr(now).Sub(seg.Start); d > longest {
				longest = d
			}
		}
	}

	return longest
}
