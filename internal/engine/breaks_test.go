package engine

import (
	"testing"
	"time"

	"github.com/flowtimer/flow/internal/models"
)

func TestBreakTime(t *testing.T) {
	now := at(18, 0)

	cases := []struct {
		name     string
		sessions []*models.Session
		expected time.Duration
	}{
		{
			name:     "no sessions",
			sessions: nil,
			expected: 0,
		},
		{
			name: "single qualifying gap",
			sessions: []*models.Session{
				newSession("a", "Alpha", "",
					seg(at(9, 0), at(9, 52)),
					seg(at(10, 9), at(11, 0)),
				),
			},
			expected: 17 * time.Minute,
		},
		{
			name: "gap exactly at threshold counts",
			sessions: []*models.Session{
				newSession("a", "Alpha", "",
					seg(at(9, 0), at(10, 0)),
					seg(at(10, 1), at(11, 0)),
				),
			},
			expected: time.Minute,
		},
		{
			name: "sub-threshold gap ignored",
			sessions: []*models.Session{
				newSession("a", "Alpha", "",
					seg(at(9, 0), at(10, 0)),
					seg(at(10, 0).Add(59*time.Second), at(11, 0)),
				),
			},
			expected: 0,
		},
		{
			name: "hard stop suppresses the following gap",
			sessions: []*models.Session{
				newSession("a", "Alpha", "",
					hardSeg(at(9, 0), at(10, 0)),
					seg(at(10, 10), at(11, 0)),
				),
			},
			expected: 0,
		},
		{
			name: "gaps merge across sessions",
			sessions: []*models.Session{
				newSession("a", "Alpha", "", seg(at(9, 0), at(10, 0))),
				newSession("b", "Beta", "", seg(at(10, 30), at(11, 0))),
			},
			expected: 30 * time.Minute,
		},
		{
			name: "overlapping segments have no gap",
			sessions: []*models.Session{
				newSession("a", "Alpha", "", seg(at(9, 0), at(10, 30))),
				newSession("b", "Beta", "", seg(at(10, 0), at(11, 0))),
			},
			expected: 0,
		},
		{
			name: "deleted segment consumes the span around it",
			sessions: []*models.Session{
				newSession("a", "Alpha", "",
					seg(at(9, 0), at(10, 0)),
					deletedSeg(at(10, 0), at(10, 30)),
					seg(at(10, 30), at(11, 0)),
				),
			},
			expected: 0,
		},
		{
			name: "midnight gap spans two days and is excluded",
			sessions: []*models.Session{
				newSession("a", "Alpha", "",
					seg(at(23, 0), at(23, 50)),
					seg(at(24, 10), at(25, 0)),
				),
			},
			expected: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BreakTime(tc.sessions, DefaultBreakThreshold, 0, now)
			if got != tc.expected {
				t.Errorf(
					"Expected break time to be: %v, but got: %v",
					tc.expected,
					got,
				)
			}
		})
	}
}

func TestBreakTimeAdjustedDay(t *testing.T) {
	now := at(30, 0)

	// 23:50 to 00:10 crosses midnight, but with the day starting at
	// 06:00 both instants belong to the same adjusted day.
	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			seg(at(23, 0), at(23, 50)),
			seg(at(24, 10), at(25, 0)),
		),
	}

	got := BreakTime(sessions, DefaultBreakThreshold, 6, now)
	if expected := 20 * time.Minute; got != expected {
		t.Errorf(
			"Expected break time to be: %v, but got: %v",
			expected,
			got,
		)
	}
}

func TestBreakTimeDefaultThreshold(t *testing.T) {
	now := at(18, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			seg(at(9, 0), at(10, 0)),
			seg(at(10, 5), at(11, 0)),
		),
	}

	if got := BreakTime(sessions, 0, 0, now); got != 5*time.Minute {
		t.Errorf(
			"Expected zero threshold to fall back to the default, got: %v",
			got,
		)
	}
}

func TestBreakCount(t *testing.T) {
	sessions := []*models.Session{
		// Three segments, deleted ones included: two boundaries.
		newSession("a", "Alpha", "",
			seg(at(9, 0), at(9, 30)),
			deletedSeg(at(9, 35), at(9, 45)),
			seg(at(9, 50), at(10, 0)),
		),
		// A single segment contributes nothing.
		newSession("b", "Beta", "", seg(at(10, 0), at(11, 0))),
		newSession("c", "Gamma", ""),
	}

	if got := BreakCount(sessions); got != 2 {
		t.Errorf("Expected break count to be: 2, but got: %d", got)
	}
}
