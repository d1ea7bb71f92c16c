// Package store connects to the data store and manages sessions,
// groups, and the persisted timer snapshot.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/flowtimer/flow/internal/models"
)

var pathToDB string

var (
	sessionBucket = []byte("sessions")
	groupBucket   = []byte("groups")
	stateBucket   = []byte("state")

	timerStateKey = []byte("timer")
)

var (
	errFlowRunning = errors.New(
		"is Flow already running? Only one instance can be active at a time",
	)

	// ErrSessionNotFound is returned when a session id has no record.
	ErrSessionNotFound = errors.New(
		"session not found: please start a new session",
	)

	// ErrGroupNotFound is returned when a group id has no record.
	ErrGroupNotFound = errors.New("group not found")
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) UpdateSession(sess *models.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(sess.ID), value)
	})
}

func (c *Client) GetSession(id string) (*models.Session, error) {
	var sess models.Session

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket).Get([]byte(id))
		if len(b) == 0 {
			return ErrSessionNotFound
		}

		return json.Unmarshal(b, &sess)
	})
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// GetSessions scans the whole bucket and filters in memory. The data
// is one person's work history, so a full scan stays cheap and keeps
// the key layout trivial (keyed by session id, not by time).
func (c *Client) GetSessions(
	startTime, endTime time.Time,
	groupID string,
) ([]*models.Session, error) {
	var sessions []*models.Session

	filterGroup := groupID != "" && groupID != models.GroupAll

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).ForEach(func(_, v []byte) error {
			var sess models.Session

			err := json.Unmarshal(v, &sess)
			if err != nil {
				return err
			}

			if !startTime.IsZero() && sess.CreatedAt.Before(startTime) {
				return nil
			}

			if !endTime.IsZero() && sess.CreatedAt.After(endTime) {
				return nil
			}

			if filterGroup && sess.GroupID != groupID {
				return nil
			}

			sessions = append(sessions, &sess)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (c *Client) DeleteSessions(ids []string) error {
	return c.Update(func(tx *bolt.Tx) error {
		for _, id := range ids {
			err := tx.Bucket(sessionBucket).Delete([]byte(id))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) GetGroups() ([]*models.Group, error) {
	var groups []*models.Group

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket(groupBucket).ForEach(func(_, v []byte) error {
			var group models.Group

			err := json.Unmarshal(v, &group)
			if err != nil {
				return err
			}

			groups = append(groups, &group)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return groups, nil
}

func (c *Client) UpdateGroup(group *models.Group) error {
	value, err := json.Marshal(group)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(groupBucket).Put([]byte(group.ID), value)
	})
}

func (c *Client) DeleteGroup(id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(groupBucket).Get([]byte(id)) == nil {
			return ErrGroupNotFound
		}

		return tx.Bucket(groupBucket).Delete([]byte(id))
	})
}

func (c *Client) GetTimerState() (*models.TimerSnapshot, error) {
	var snap models.TimerSnapshot

	var found bool

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(stateBucket).Get(timerStateKey)
		if len(b) == 0 {
			return nil
		}

		found = true

		return json.Unmarshal(b, &snap)
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &snap, nil
}

func (c *Client) SaveTimerState(snap *models.TimerSnapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put(timerStateKey, value)
	})
}

func (c *Client) ClearTimerState() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Delete(timerStateKey)
	})
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errFlowRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{sessionBucket, groupBucket, stateBucket} {
			_, err = tx.CreateBucketIfNotExists(name)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
