// Package tracker owns the session lifecycle: starting, pausing, and
// stopping work, finishing and resuming sessions, and the segment
// edits (delete, restore, gap removal) the timeline exposes.
package tracker

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
	"github.com/flowtimer/flow/store"
)

var (
	errAlreadyRunning = errors.New(
		"a timer is already active: finish or pause the current session first",
	)
	errNotRunning     = errors.New("no session is currently running")
	errNothingTracked = errors.New("no session is being tracked")
	errTimerActive    = errors.New(
		"stop the timer before deleting the tracked session",
	)
	errSegmentDeleted = errors.New("segment is already deleted")
	errBadSegment     = errors.New("segment index out of range")
)

// Tracker mutates sessions in the store and keeps the persisted timer
// snapshot coherent. All derived figures (durations, breaks, scores)
// belong to the engine package; the tracker only shapes the raw data.
type Tracker struct {
	db store.DB

	// DayStartHour decides when a resumed session is split into a
	// fresh one instead of extending the original.
	dayStartHour int

	now func() time.Time
}

// New returns a Tracker backed by db.
func New(db store.DB, dayStartHour int) *Tracker {
	return &Tracker{
		db:           db,
		dayStartHour: dayStartHour,
		now:          time.Now,
	}
}

// snapshot loads the persisted timer state, mapping absence to an
// idle snapshot rather than an error.
func (t *Tracker) snapshot() (*models.TimerSnapshot, error) {
	snap, err := t.db.GetTimerState()
	if err != nil {
		return nil, err
	}

	if snap == nil {
		snap = &models.TimerSnapshot{State: models.StateIdle}
	}

	return snap, nil
}

// Current returns the tracked session and the timer state. The
// session is nil when the timer is idle.
func (t *Tracker) Current() (*models.Session, models.TimerState, error) {
	snap, err := t.snapshot()
	if err != nil {
		return nil, models.StateIdle, err
	}

	if snap.State == models.StateIdle || snap.SessionID == "" {
		return nil, models.StateIdle, nil
	}

	sess, err := t.db.GetSession(snap.SessionID)
	if err != nil {
		return nil, snap.State, err
	}

	return sess, snap.State, nil
}

// Start begins tracking. With an idle timer it creates a new session
// (deriving a name when none is given); with a paused or stopped one
// it reopens the tracked session by appending a fresh segment.
func (t *Tracker) Start(name, groupID string) (*models.Session, error) {
	snap, err := t.snapshot()
	if err != nil {
		return nil, err
	}

	if snap.State == models.StateRunning {
		return nil, errAlreadyRunning
	}

	now := t.now()

	if snap.State == models.StatePaused || snap.State == models.StateStopped {
		sess, err := t.db.GetSession(snap.SessionID)
		if err == nil {
			sess.IsActive = true
			sess.Segments = append(sess.Segments, models.TimeSegment{
				Start: now,
			})

			return sess, t.save(sess, models.StateRunning)
		}

		if !errors.Is(err, store.ErrSessionNotFound) {
			return nil, err
		}
		// The snapshot points at a vanished session; fall through and
		// start fresh.
	}

	if name == "" || name == taskBaseName {
		history, err := t.db.GetSessions(time.Time{}, time.Time{}, "")
		if err != nil {
			return nil, err
		}

		name = nextName(history)
	}

	sess := &models.Session{
		ID:        uuid.NewString(),
		Name:      name,
		GroupID:   groupID,
		CreatedAt: now,
		Segments:  []models.TimeSegment{{Start: now}},
		IsActive:  true,
	}

	return sess, t.save(sess, models.StateRunning)
}

// Pause closes the open segment and keeps the session tracked.
func (t *Tracker) Pause() (*models.Session, error) {
	sess, state, err := t.Current()
	if err != nil {
		return nil, err
	}

	if state != models.StateRunning || sess == nil {
		return nil, errNotRunning
	}

	t.closeOpenSegment(sess, "")
	sess.IsActive = false

	return sess, t.save(sess, models.StatePaused)
}

// HardStop halts tracking without starting a break: the closing
// segment is tagged so the idle time that follows never counts as
// rest. Stopping an already paused session retags its last segment.
func (t *Tracker) HardStop() (*models.Session, error) {
	sess, state, err := t.Current()
	if err != nil {
		return nil, err
	}

	if sess == nil || state == models.StateIdle {
		return nil, errNothingTracked
	}

	switch state {
	case models.StateRunning:
		t.closeOpenSegment(sess, models.StopHard)
	case models.StatePaused:
		if n := len(sess.Segments); n > 0 && !sess.Segments[n-1].Open() {
			sess.Segments[n-1].StopReason = models.StopHard
		}
	}

	sess.IsActive = false

	return sess, t.save(sess, models.StateStopped)
}

// Finish archives the tracked session with the given completion
// status and returns the timer to idle.
func (t *Tracker) Finish(
	status models.CompletionStatus,
) (*models.Session, error) {
	sess, state, err := t.Current()
	if err != nil {
		return nil, err
	}

	if sess == nil {
		return nil, errNothingTracked
	}

	if state == models.StateRunning {
		t.closeOpenSegment(sess, "")
	}

	sess.IsActive = false
	sess.IsFinished = true
	sess.CompletionStatus = status

	if err = t.db.UpdateSession(sess); err != nil {
		return nil, err
	}

	return sess, t.db.ClearTimerState()
}

// Resume reopens an archived session. A session from an earlier
// adjusted day is not reopened in place: the original is closed off
// as completed and a linked continuation session starts fresh, so
// each day's ledger stays self-contained.
func (t *Tracker) Resume(id string) (*models.Session, error) {
	snap, err := t.snapshot()
	if err != nil {
		return nil, err
	}

	if snap.State != models.StateIdle {
		return nil, errAlreadyRunning
	}

	sess, err := t.db.GetSession(id)
	if err != nil {
		return nil, err
	}

	now := t.now()

	if !timeutil.SameAdjustedDay(sess.CreatedAt, now, t.dayStartHour) {
		sess.CompletionStatus = models.Completed
		if err = t.db.UpdateSession(sess); err != nil {
			return nil, err
		}

		cont := &models.Session{
			ID:        uuid.NewString(),
			Name:      sess.Name + " (continued)",
			GroupID:   sess.GroupID,
			CreatedAt: now,
			Segments:  []models.TimeSegment{{Start: now}},
			IsActive:  true,
			Memo:      sess.Memo,
		}

		return cont, t.save(cont, models.StateRunning)
	}

	sess.IsActive = true
	sess.IsFinished = false
	sess.CompletionStatus = ""
	sess.DeletedAt = time.Time{}
	sess.Segments = append(sess.Segments, models.TimeSegment{Start: now})

	return sess, t.save(sess, models.StateRunning)
}

// ReleaseHold marks an on-hold session completed without restarting
// it.
func (t *Tracker) ReleaseHold(id string) (*models.Session, error) {
	sess, err := t.db.GetSession(id)
	if err != nil {
		return nil, err
	}

	sess.CompletionStatus = models.Completed

	return sess, t.db.UpdateSession(sess)
}

// DeleteSegment soft-deletes one segment. Deleting the last surviving
// work segment trashes the whole session, since nothing visible
// remains of it.
func (t *Tracker) DeleteSegment(sessionID string, index int) error {
	sess, err := t.db.GetSession(sessionID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(sess.Segments) {
		return errBadSegment
	}

	target := &sess.Segments[index]
	if target.Deleted() {
		return errSegmentDeleted
	}

	now := t.now()

	lastOne := sess.LiveSegments() == 1 && target.Kind() == models.KindWork

	target.DeletedAt = now
	if target.Open() {
		target.End = now
	}

	snap, err := t.snapshot()
	if err != nil {
		return err
	}

	if snap.SessionID == sessionID {
		if snap.State == models.StateRunning ||
			snap.State == models.StatePaused {
			if !lastOne {
				return t.db.UpdateSession(sess)
			}

			return errTimerActive
		}

		if lastOne {
			if err = t.db.UpdateSession(sess); err != nil {
				return err
			}

			return t.db.ClearTimerState()
		}
	}

	if lastOne {
		sess.DeletedAt = now
	}

	return t.db.UpdateSession(sess)
}

// RemoveGap redacts a span of idle time by recording a deleted-gap
// marker on the session that preceded it. The marker consumes the
// span on the timeline so no break is derived across it.
func (t *Tracker) RemoveGap(sessionID string, start, end time.Time) error {
	sess, err := t.db.GetSession(sessionID)
	if err != nil {
		return err
	}

	sess.Segments = append(sess.Segments, models.TimeSegment{
		Start:        start,
		End:          end,
		DeletedAt:    t.now(),
		IsDeletedGap: true,
	})

	sort.SliceStable(sess.Segments, func(i, j int) bool {
		return sess.Segments[i].Start.Before(sess.Segments[j].Start)
	})

	return t.db.UpdateSession(sess)
}

// RestoreSegment undoes a segment deletion. Removed-gap markers are
// synthetic, so restoring one drops it entirely instead of reviving
// it as work.
func (t *Tracker) RestoreSegment(sessionID string, index int) error {
	sess, err := t.db.GetSession(sessionID)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(sess.Segments) {
		return errBadSegment
	}

	if sess.Segments[index].IsDeletedGap {
		sess.Segments = append(
			sess.Segments[:index],
			sess.Segments[index+1:]...,
		)
	} else {
		sess.Segments[index].DeletedAt = time.Time{}
	}

	return t.db.UpdateSession(sess)
}

// TrashSession soft-deletes a whole session.
func (t *Tracker) TrashSession(id string) error {
	snap, err := t.snapshot()
	if err != nil {
		return err
	}

	if snap.SessionID == id {
		if snap.State == models.StateRunning ||
			snap.State == models.StatePaused {
			return errTimerActive
		}

		if err = t.db.ClearTimerState(); err != nil {
			return err
		}
	}

	sess, err := t.db.GetSession(id)
	if err != nil {
		return err
	}

	sess.DeletedAt = t.now()
	sess.IsActive = false

	return t.db.UpdateSession(sess)
}

// RestoreSession brings a trashed session back.
func (t *Tracker) RestoreSession(id string) error {
	sess, err := t.db.GetSession(id)
	if err != nil {
		return err
	}

	sess.DeletedAt = time.Time{}

	return t.db.UpdateSession(sess)
}

// PurgeTrash permanently deletes every trashed session and reports
// how many were removed.
func (t *Tracker) PurgeTrash() (int, error) {
	sessions, err := t.db.GetSessions(time.Time{}, time.Time{}, "")
	if err != nil {
		return 0, err
	}

	var ids []string

	for _, sess := range sessions {
		if sess.Trashed() {
			ids = append(ids, sess.ID)
		}
	}

	if len(ids) == 0 {
		return 0, nil
	}

	return len(ids), t.db.DeleteSessions(ids)
}

// Rename changes a session's name.
func (t *Tracker) Rename(id, name string) error {
	sess, err := t.db.GetSession(id)
	if err != nil {
		return err
	}

	sess.Name = name

	return t.db.UpdateSession(sess)
}

// SetGroup reassigns a session to a group.
func (t *Tracker) SetGroup(id, groupID string) error {
	sess, err := t.db.GetSession(id)
	if err != nil {
		return err
	}

	sess.GroupID = groupID

	return t.db.UpdateSession(sess)
}

// SetMemo replaces a session's memo text.
func (t *Tracker) SetMemo(id, memo string) error {
	sess, err := t.db.GetSession(id)
	if err != nil {
		return err
	}

	sess.Memo = memo

	return t.db.UpdateSession(sess)
}

func (t *Tracker) closeOpenSegment(
	sess *models.Session,
	reason models.StopReason,
) {
	i, ok := sess.OpenSegment()
	if !ok {
		return
	}

	sess.Segments[i].End = t.now()
	sess.Segments[i].StopReason = reason
}

func (t *Tracker) save(
	sess *models.Session,
	state models.TimerState,
) error {
	if err := t.db.UpdateSession(sess); err != nil {
		return err
	}

	return t.db.SaveTimerState(&models.TimerSnapshot{
		SessionID: sess.ID,
		State:     state,
		UpdatedAt: t.now(),
	})
}

// Describe renders a one-line human summary of the timer state.
func Describe(sess *models.Session, state models.TimerState) string {
	switch state {
	case models.StateRunning:
		return fmt.Sprintf("tracking %q", sess.Name)
	case models.StatePaused:
		return fmt.Sprintf("%q is paused", sess.Name)
	case models.StateStopped:
		return fmt.Sprintf("%q is stopped", sess.Name)
	default:
		return "no active session"
	}
}
