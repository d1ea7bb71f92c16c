package engine

import (
	"time"

	"github.com/flowtimer/flow/internal/models"
)

// All fixtures live on an arbitrary fixed date so tests never depend
// on the wall clock.
var testDay = time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

// at returns a clock time on the fixture date. Hours past 23 roll
// into the following date.
func at(hour, min int) time.Time {
	return testDay.Add(
		time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute,
	)
}

func seg(start, end time.Time) models.TimeSegment {
	return models.TimeSegment{Start: start, End: end}
}

func hardSeg(start, end time.Time) models.TimeSegment {
	s := seg(start, end)
	s.StopReason = models.StopHard

	return s
}

func deletedSeg(start, end time.Time) models.TimeSegment {
	s := seg(start, end)
	s.DeletedAt = end

	return s
}

func openSeg(start time.Time) models.TimeSegment {
	return models.TimeSegment{Start: start}
}

func newSession(id, name, groupID string, segs ...models.TimeSegment) *models.Session {
	createdAt := time.Time{}
	if len(segs) > 0 {
		createdAt = segs[0].Start
	}

	return &models.Session{
		ID:        id,
		Name:      name,
		GroupID:   groupID,
		CreatedAt: createdAt,
		Segments:  segs,
	}
}
