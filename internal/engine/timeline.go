package engine

import (
	"sort"
	"time"

	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
	"github.com/flowtimer/flow/internal/ui"
)

// Fill colours for non-work slices. Work slices draw from the task
// palette instead, which deliberately omits these shades.
const (
	breakFill      = "#a7f3d0"
	pausedFill     = "#cbd5e1"
	otherGroupFill = "#e2e8f0"
	deletedFill    = "#f1f5f9"
)

// Slice is one labeled, time-bounded unit of the reconstructed
// timeline: a work span, a break, a hard-stop pause, a redacted span,
// or activity from outside the selected group.
type Slice struct {
	Label     string
	Start     time.Time
	End       time.Time
	Duration  time.Duration
	FillColor string

	IsBreak      bool
	IsHardStop   bool
	IsDeleted    bool
	IsOnHold     bool
	IsOngoing    bool
	IsOtherGroup bool

	// SessionID and SegmentIndex point back at the segment a slice
	// was built from, so the caller can issue delete or restore
	// commands. SegmentIndex is -1 for slices that have no single
	// originating segment (breaks, pauses, other-group spans).
	SessionID    string
	SegmentIndex int
}

// TimelineOptions selects and parameterises a reconstruction.
type TimelineOptions struct {
	// GroupID filters the rendered sessions. models.GroupAll (or
	// empty) renders everything; any other value renders only that
	// group's sessions and folds the rest into other-group slices.
	GroupID string

	// DayStartHour shifts the day boundary used to cut breaks that
	// span two adjusted days.
	DayStartHour int

	// BreakThreshold is the minimum rendered gap length. Zero or
	// negative falls back to DefaultBreakThreshold.
	BreakThreshold time.Duration
}

// timelineItem is a segment clipped to the window plus the session
// context the walk needs.
type timelineItem struct {
	start      time.Time
	end        time.Time
	session    *models.Session
	segIndex   int
	stopReason models.StopReason
	deleted    bool
	deletedGap bool
	wasOpen    bool
}

// Timeline reconstructs the chronological ledger of the given
// sessions as renderable slices.
//
// The window spans from the earliest segment start across ALL
// sessions to the latest segment end (open segments count as ending
// at now) — the full set, not the filtered one, so that a group
// filter narrows what is labeled as work without shrinking the day it
// sits in. Every instant of the window is covered by exactly one
// slice; zero-length spans are omitted.
//
// Slices are returned newest first. Callers rendering oldest-first
// must re-reverse; the list view is the primary consumer and reads
// top-down from the most recent entry.
func Timeline(
	sessions []*models.Session,
	opts TimelineOptions,
	now time.Time,
) []Slice {
	if opts.BreakThreshold <= 0 {
		opts.BreakThreshold = DefaultBreakThreshold
	}

	filterActive := opts.GroupID != "" && opts.GroupID != models.GroupAll

	filtered := sessions
	if filterActive {
		filtered = nil

		for _, sess := range sessions {
			if sess.GroupID == opts.GroupID {
				filtered = append(filtered, sess)
			}
		}
	}

	windowStart, windowEnd, ok := window(sessions, now)
	if !ok || len(filtered) == 0 {
		return nil
	}

	items := clipItems(filtered, windowStart, windowEnd, now)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].start.Before(items[j].start)
	})

	w := walker{
		sessions:  sessions,
		opts:      opts,
		now:       now,
		windowEnd: windowEnd,
		cursor:    windowStart,
		lastEnd:   windowStart,
	}

	for _, item := range items {
		if item.start.After(w.cursor) {
			w.fillGap(w.cursor, item.start)
		}

		w.emitItem(item)
	}

	if w.cursor.Before(windowEnd) {
		w.fillGap(w.cursor, windowEnd)
	}

	reverse(w.slices)

	return w.slices
}

// window derives the reconstruction bounds from every segment of
// every session. ok is false when there are no segments at all.
func window(sessions []*models.Session, now time.Time) (start, end time.Time, ok bool) {
	for _, sess := range sessions {
		for _, seg := range sess.Segments {
			if !ok || seg.Start.Before(start) {
				start = seg.Start
			}

			if segEnd := seg.EndOr(now); !ok || segEnd.After(end) {
				end = segEnd
			}

			ok = true
		}
	}

	return start, end, ok
}

// clipItems clips the filtered sessions' segments to the window,
// dropping anything that collapses to zero. Deleted segments and
// removed-gap markers survive: they still occupy timeline space.
func clipItems(
	filtered []*models.Session,
	windowStart, windowEnd, now time.Time,
) []timelineItem {
	var items []timelineItem

	for _, sess := range filtered {
		for i, seg := range sess.Segments {
			start := seg.Start
			if start.Before(windowStart) {
				start = windowStart
			}

			end := seg.EndOr(now)
			if end.After(windowEnd) {
				end = windowEnd
			}

			if !end.After(start) {
				continue
			}

			items = append(items, timelineItem{
				start:      start,
				end:        end,
				session:    sess,
				segIndex:   i,
				stopReason: seg.StopReason,
				deleted:    seg.Deleted(),
				deletedGap: seg.IsDeletedGap,
				wasOpen:    seg.Open(),
			})
		}
	}

	return items
}

// walker carries the cursor state of a single left-to-right pass.
type walker struct {
	sessions  []*models.Session
	opts      TimelineOptions
	now       time.Time
	windowEnd time.Time

	cursor        time.Time
	lastEnd       time.Time
	lastStop      models.StopReason
	lastSessionID string

	slices []Slice
}

// fillGap accounts for [start, end): either one break/pause slice, or
// — when a group filter is active and other groups worked in the gap
// — an interleaving of other-group spans and the real breaks between
// them.
func (w *walker) fillGap(start, end time.Time) {
	hardStop := w.lastStop == models.StopHard

	if w.opts.GroupID != "" && w.opts.GroupID != models.GroupAll {
		other := w.otherGroupSpans(start, end)

		if len(other) > 0 {
			gapCursor := start

			for _, span := range other {
				s := span.start
				if s.Before(gapCursor) {
					s = gapCursor
				}

				if s.After(gapCursor) {
					w.addBreak(gapCursor, s, hardStop)
				}

				if span.end.After(s) {
					w.slices = append(w.slices, Slice{
						Label:        span.name,
						Start:        s,
						End:          span.end,
						Duration:     span.end.Sub(s),
						FillColor:    otherGroupFill,
						IsOtherGroup: true,
						SegmentIndex: -1,
					})
				}

				if span.end.After(gapCursor) {
					gapCursor = span.end
				}
			}

			if gapCursor.Before(end) {
				w.addBreak(gapCursor, end, hardStop)
			}

			return
		}
	}

	w.addBreak(start, end, hardStop)
}

// addBreak emits a break (or pause) slice for [start, end) when it
// qualifies for display: a positive gap, on the same adjusted day as
// the previous segment's end, and either at least the threshold long
// or a hard stop. Hard stops render however short; they just read
// "paused" rather than "break".
func (w *walker) addBreak(start, end time.Time, hardStop bool) {
	gap := end.Sub(start)
	if gap <= 0 {
		return
	}

	if !timeutil.SameAdjustedDay(w.lastEnd, start, w.opts.DayStartHour) {
		return
	}

	if gap < w.opts.BreakThreshold && !hardStop {
		return
	}

	slice := Slice{
		Start:        start,
		End:          end,
		Duration:     gap,
		SessionID:    w.lastSessionID,
		SegmentIndex: -1,
	}

	if hardStop {
		slice.Label = "Paused"
		slice.FillColor = pausedFill
		slice.IsHardStop = true
	} else {
		slice.Label = "Break"
		slice.FillColor = breakFill
		slice.IsBreak = true
	}

	w.slices = append(w.slices, slice)
}

// emitItem appends the slice for one clipped segment and advances the
// cursor state.
func (w *walker) emitItem(item timelineItem) {
	switch {
	case item.deletedGap:
		w.slices = append(w.slices, Slice{
			Label:        "Removed time",
			Start:        item.start,
			End:          item.end,
			Duration:     item.end.Sub(item.start),
			FillColor:    deletedFill,
			IsDeleted:    true,
			SessionID:    item.session.ID,
			SegmentIndex: item.segIndex,
		})
	case item.deleted:
		w.slices = append(w.slices, Slice{
			Label:        item.session.Name + " (deleted)",
			Start:        item.start,
			End:          item.end,
			Duration:     item.end.Sub(item.start),
			FillColor:    deletedFill,
			IsDeleted:    true,
			SessionID:    item.session.ID,
			SegmentIndex: item.segIndex,
		})
	default:
		w.slices = append(w.slices, Slice{
			Label:        item.session.Name,
			Start:        item.start,
			End:          item.end,
			Duration:     item.end.Sub(item.start),
			FillColor:    ui.TaskColor("list-" + item.session.ID + item.session.Name),
			IsOnHold:     item.session.CompletionStatus == models.OnHold,
			IsOngoing:    item.wasOpen && item.session.IsActive,
			SessionID:    item.session.ID,
			SegmentIndex: item.segIndex,
		})
	}

	if item.end.After(w.cursor) {
		w.cursor = item.end
	}

	w.lastEnd = item.end
	w.lastStop = item.stopReason
	w.lastSessionID = item.session.ID
}

// otherSpan is a clipped segment from a session outside the active
// group filter.
type otherSpan struct {
	start time.Time
	end   time.Time
	name  string
}

// otherGroupSpans collects non-deleted segments of non-trashed
// sessions outside the filtered group that overlap [gapStart, gapEnd),
// clipped and sorted.
func (w *walker) otherGroupSpans(gapStart, gapEnd time.Time) []otherSpan {
	var spans []otherSpan

	for _, sess := range w.sessions {
		if sess.GroupID == w.opts.GroupID || sess.Trashed() {
			continue
		}

		for _, seg := range sess.Segments {
			if seg.Deleted() {
				continue
			}

			s := seg.Start
			if s.Before(gapStart) {
				s = gapStart
			}

			e := seg.EndOr(w.now)
			if e.After(gapEnd) {
				e = gapEnd
			}

			if !e.After(s) {
				continue
			}

			spans = append(spans, otherSpan{start: s, end: e, name: sess.Name})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})

	return spans
}

func reverse(s []Slice) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
