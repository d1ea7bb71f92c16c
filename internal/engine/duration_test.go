package engine

import (
	"testing"
	"time"

	"github.com/flowtimer/flow/internal/models"
)

func TestTotalDuration(t *testing.T) {
	now := at(12, 0)

	cases := []struct {
		name     string
		segments []models.TimeSegment
		expected time.Duration
	}{
		{
			name:     "empty",
			segments: nil,
			expected: 0,
		},
		{
			name: "single closed segment",
			segments: []models.TimeSegment{
				seg(at(9, 0), at(10, 30)),
			},
			expected: 90 * time.Minute,
		},
		{
			name: "multiple segments sum",
			segments: []models.TimeSegment{
				seg(at(9, 0), at(9, 50)),
				seg(at(10, 0), at(10, 25)),
			},
			expected: 75 * time.Minute,
		},
		{
			name: "deleted segment excluded",
			segments: []models.TimeSegment{
				seg(at(9, 0), at(9, 30)),
				deletedSeg(at(9, 30), at(10, 0)),
			},
			expected: 30 * time.Minute,
		},
		{
			name: "open segment runs until now",
			segments: []models.TimeSegment{
				seg(at(9, 0), at(9, 30)),
				openSeg(at(11, 0)),
			},
			expected: 90 * time.Minute,
		},
		{
			name: "negative span clipped to zero",
			segments: []models.TimeSegment{
				seg(at(10, 0), at(9, 0)),
				seg(at(10, 0), at(10, 15)),
			},
			expected: 15 * time.Minute,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalDuration(tc.segments, now)
			if got != tc.expected {
				t.Errorf(
					"Expected total duration to be: %v, but got: %v",
					tc.expected,
					got,
				)
			}
		})
	}
}

func TestSessionsDuration(t *testing.T) {
	now := at(12, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "", seg(at(9, 0), at(9, 30))),
		newSession("b", "Beta", "", seg(at(10, 0), at(10, 45))),
	}

	got := SessionsDuration(sessions, now)
	if expected := 75 * time.Minute; got != expected {
		t.Errorf(
			"Expected sessions duration to be: %v, but got: %v",
			expected,
			got,
		)
	}
}

func TestLongestStretch(t *testing.T) {
	now := at(14, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			seg(at(9, 0), at(9, 30)),
			deletedSeg(at(9, 30), at(13, 30)),
		),
		newSession("b", "Beta", "", seg(at(10, 0), at(11, 45))),
	}

	got := LongestStretch(sessions, now)
	if expected := 105 * time.Minute; got != expected {
		t.Errorf(
			"Expected longest stretch to be: %v, but got: %v",
			expected,
			got,
		)
	}
}
