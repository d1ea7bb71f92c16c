// Package models defines the value types shared by the engine, the
// store, and the command layer.
package models

import "time"

// StopReason tags how a segment was closed.
type StopReason string

// StopHard marks an intentional full stop: the idle time that follows
// the segment must not be counted as a break.
const StopHard StopReason = "hard-stop"

// SegmentKind classifies a segment for rendering and accounting.
type SegmentKind int

const (
	// KindWork is a live work span.
	KindWork SegmentKind = iota
	// KindWorkDeleted is a soft-deleted work span. It still occupies
	// timeline space but contributes to neither work nor break totals.
	KindWorkDeleted
	// KindGapRemoved is a synthetic marker covering a break the user
	// erased. It was never real work.
	KindGapRemoved
)

// TimeSegment is one contiguous span of active work. A zero End means
// the segment is still running.
type TimeSegment struct {
	Start        time.Time  `json:"start"`
	End          time.Time  `json:"end"`
	StopReason   StopReason `json:"stop_reason,omitempty"`
	DeletedAt    time.Time  `json:"deleted_at"`
	IsDeletedGap bool       `json:"is_deleted_gap,omitempty"`
}

// Open reports whether the segment is still running.
func (s TimeSegment) Open() bool {
	return s.End.IsZero()
}

// Deleted reports whether the segment has been soft-deleted.
func (s TimeSegment) Deleted() bool {
	return !s.DeletedAt.IsZero()
}

// EndOr returns the segment end, or now for an open segment.
func (s TimeSegment) EndOr(now time.Time) time.Time {
	if s.Open() {
		return now
	}

	return s.End
}

// Kind resolves the segment's classification from its flags.
func (s TimeSegment) Kind() SegmentKind {
	switch {
	case s.IsDeletedGap:
		return KindGapRemoved
	case s.Deleted():
		return KindWorkDeleted
	default:
		return KindWork
	}
}

// CompletionStatus records how an archived session ended.
type CompletionStatus string

const (
	// Completed marks a session that was finished for good.
	Completed CompletionStatus = "completed"
	// OnHold marks a session that was shelved but remains resumable.
	OnHold CompletionStatus = "on-hold"
)

// Session is one task or work item owning an ordered list of segments.
// Segments are logically ordered by start time but not necessarily
// stored sorted; consumers must sort.
type Session struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	GroupID          string           `json:"group_id"`
	CreatedAt        time.Time        `json:"created_at"`
	Segments         []TimeSegment    `json:"segments"`
	IsActive         bool             `json:"is_active"`
	IsFinished       bool             `json:"is_finished"`
	CompletionStatus CompletionStatus `json:"completion_status,omitempty"`
	Memo             string           `json:"memo,omitempty"`
	DeletedAt        time.Time        `json:"deleted_at"`
}

// Trashed reports whether the whole session has been moved to the
// trash.
func (s *Session) Trashed() bool {
	return !s.DeletedAt.IsZero()
}

// OpenSegment returns the index of the running segment, if any.
func (s *Session) OpenSegment() (int, bool) {
	for i := len(s.Segments) - 1; i >= 0; i-- {
		if s.Segments[i].Open() && !s.Segments[i].Deleted() {
			return i, true
		}
	}

	return -1, false
}

// LiveSegments counts the segments that are neither deleted nor
// removed-gap markers.
func (s *Session) LiveSegments() int {
	var n int

	for _, seg := range s.Segments {
		if seg.Kind() == KindWork {
			n++
		}
	}

	return n
}

// Group is a label and display colour referenced by sessions.
type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

const (
	// GroupAll is the sentinel accepted wherever a group filter is
	// expected, meaning no filtering.
	GroupAll = "all"
	// GroupUnassigned is the fallback applied when a session points at
	// a group that no longer exists.
	GroupUnassigned = "unassigned"
)

// TimerState is the coarse state of the single tracked session.
type TimerState string

const (
	StateIdle    TimerState = "idle"
	StateRunning TimerState = "running"
	StatePaused  TimerState = "paused"
	// StateStopped is a hard stop: visually paused, but the elapsed
	// idle time is not accounted as a break.
	StateStopped TimerState = "stopped"
)

// TimerSnapshot persists which session the timer is pointed at so an
// interrupted run can be resumed from another process.
type TimerSnapshot struct {
	SessionID string     `json:"session_id"`
	State     TimerState `json:"state"`
	UpdatedAt time.Time  `json:"updated_at"`
}
