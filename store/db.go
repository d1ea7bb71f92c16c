package store

import (
	"time"

	"github.com/flowtimer/flow/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// GetSessions returns saved sessions whose creation time falls
	// within the given bounds, optionally restricted to one group.
	// Zero bounds are unbounded; trashed sessions are included.
	GetSessions(
		startTime, endTime time.Time,
		groupID string,
	) ([]*models.Session, error)
	// GetSession retrieves one session by id.
	GetSession(id string) (*models.Session, error)
	// UpdateSession saves a session. It is created if it doesn't
	// exist already, or overwritten if it does.
	UpdateSession(sess *models.Session) error
	// DeleteSessions permanently removes one or more saved sessions.
	DeleteSessions(ids []string) error
	// GetGroups returns every saved group.
	GetGroups() ([]*models.Group, error)
	// UpdateGroup saves a group, creating or overwriting it.
	UpdateGroup(group *models.Group) error
	// DeleteGroup removes a group. Sessions pointing at it keep their
	// dangling reference and fall back to unassigned on display.
	DeleteGroup(id string) error
	// GetTimerState retrieves the persisted timer snapshot (if any).
	GetTimerState() (*models.TimerSnapshot, error)
	// SaveTimerState stores the timer snapshot.
	SaveTimerState(snap *models.TimerSnapshot) error
	// ClearTimerState removes the persisted timer snapshot.
	ClearTimerState() error
	// Close ends the database connection.
	Close() error
	// Open begins a database connection.
	Open() error
}
