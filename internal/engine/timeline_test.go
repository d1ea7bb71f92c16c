package engine

import (
	"sort"
	"testing"
	"time"

	"github.com/flowtimer/flow/internal/models"
)

// ascending re-reverses a timeline back into chronological order for
// assertions that read left to right.
func ascending(slices []Slice) []Slice {
	out := make([]Slice, len(slices))
	copy(out, slices)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})

	return out
}

func labels(slices []Slice) []string {
	out := make([]string, 0, len(slices))
	for _, s := range slices {
		out = append(out, s.Label)
	}

	return out
}

func TestTimelineEmpty(t *testing.T) {
	if got := Timeline(nil, TimelineOptions{}, at(12, 0)); len(got) != 0 {
		t.Errorf("Expected no slices, but got: %d", len(got))
	}
}

func TestTimelineWorkAndBreak(t *testing.T) {
	now := at(12, 0)

	sessions := []*models.Session{
		newSession("a", "Write report", "",
			seg(at(9, 0), at(9, 52)),
			seg(at(10, 9), at(11, 0)),
		),
	}

	got := Timeline(sessions, TimelineOptions{}, now)
	if len(got) != 3 {
		t.Fatalf("Expected 3 slices, but got: %d (%v)", len(got), labels(got))
	}

	// Newest first.
	if got[0].Label != "Write report" || !got[0].Start.Equal(at(10, 9)) {
		t.Errorf(
			"Expected newest slice to be the 10:09 segment, got: %s at %v",
			got[0].Label,
			got[0].Start,
		)
	}

	brk := got[1]
	if !brk.IsBreak || brk.Label != "Break" {
		t.Errorf("Expected middle slice to be a break, got: %+v", brk)
	}

	if brk.Duration != 17*time.Minute {
		t.Errorf(
			"Expected break duration to be: %v, but got: %v",
			17*time.Minute,
			brk.Duration,
		)
	}

	if brk.SessionID != "a" {
		t.Errorf(
			"Expected break to reference the preceding session, got: %q",
			brk.SessionID,
		)
	}

	if got[2].SegmentIndex != 0 || brk.SegmentIndex != -1 {
		t.Errorf(
			"Expected segment back-references 0 and -1, got: %d and %d",
			got[2].SegmentIndex,
			brk.SegmentIndex,
		)
	}
}

func TestTimelineTilesWindow(t *testing.T) {
	now := at(13, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			seg(at(9, 0), at(9, 45)),
			seg(at(10, 0), at(10, 30)),
		),
		newSession("b", "Beta", "", seg(at(10, 30), at(12, 15))),
	}

	got := ascending(Timeline(sessions, TimelineOptions{}, now))
	if len(got) == 0 {
		t.Fatal("Expected slices, but got none")
	}

	cursor := at(9, 0)

	for _, s := range got {
		if !s.Start.Equal(cursor) {
			t.Fatalf(
				"Expected slice %q to start at %v, but got: %v",
				s.Label,
				cursor,
				s.Start,
			)
		}

		cursor = s.End
	}

	if !cursor.Equal(at(12, 15)) {
		t.Errorf("Expected coverage up to 12:15, but got: %v", cursor)
	}
}

func TestTimelineHardStopRendersPause(t *testing.T) {
	now := at(12, 0)

	// The 10-minute gap after a hard stop contributes nothing to
	// break totals but still renders as a labeled pause.
	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			hardSeg(at(9, 0), at(10, 0)),
			seg(at(10, 10), at(11, 0)),
		),
	}

	got := ascending(Timeline(sessions, TimelineOptions{}, now))
	if len(got) != 3 {
		t.Fatalf("Expected 3 slices, but got: %d (%v)", len(got), labels(got))
	}

	pause := got[1]
	if !pause.IsHardStop || pause.IsBreak || pause.Label != "Paused" {
		t.Errorf("Expected a pause slice, got: %+v", pause)
	}

	if pause.FillColor != pausedFill {
		t.Errorf(
			"Expected pause fill to be %s, but got: %s",
			pausedFill,
			pause.FillColor,
		)
	}
}

func TestTimelineShortHardStopStillShown(t *testing.T) {
	now := at(12, 0)

	// Sub-threshold gaps disappear, unless they follow a hard stop.
	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			hardSeg(at(9, 0), at(10, 0)),
			seg(at(10, 0).Add(30*time.Second), at(11, 0)),
		),
	}

	got := Timeline(sessions, TimelineOptions{}, now)
	if len(got) != 3 {
		t.Fatalf("Expected 3 slices, but got: %d (%v)", len(got), labels(got))
	}
}

func TestTimelineSubThresholdGapOmitted(t *testing.T) {
	now := at(12, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			seg(at(9, 0), at(10, 0)),
			seg(at(10, 0).Add(30*time.Second), at(11, 0)),
		),
	}

	got := Timeline(sessions, TimelineOptions{}, now)
	if len(got) != 2 {
		t.Fatalf("Expected 2 slices, but got: %d (%v)", len(got), labels(got))
	}
}

func TestTimelineDeletedSegment(t *testing.T) {
	now := at(12, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			seg(at(9, 0), at(10, 0)),
			deletedSeg(at(10, 0), at(10, 30)),
			seg(at(10, 30), at(11, 0)),
		),
	}

	got := ascending(Timeline(sessions, TimelineOptions{}, now))
	if len(got) != 3 {
		t.Fatalf("Expected 3 slices, but got: %d (%v)", len(got), labels(got))
	}

	del := got[1]
	if !del.IsDeleted || del.Label != "Alpha (deleted)" {
		t.Errorf("Expected a deleted slice, got: %+v", del)
	}

	if del.SessionID != "a" || del.SegmentIndex != 1 {
		t.Errorf(
			"Expected back-reference a/1, got: %s/%d",
			del.SessionID,
			del.SegmentIndex,
		)
	}
}

func TestTimelineRemovedGapMarker(t *testing.T) {
	now := at(12, 0)

	marker := deletedSeg(at(10, 0), at(10, 30))
	marker.IsDeletedGap = true

	sessions := []*models.Session{
		newSession("a", "Alpha",
			"",
			seg(at(9, 0), at(10, 0)),
			marker,
			seg(at(10, 30), at(11, 0)),
		),
	}

	got := ascending(Timeline(sessions, TimelineOptions{}, now))
	if got[1].Label != "Removed time" || !got[1].IsDeleted {
		t.Errorf("Expected a removed-time slice, got: %+v", got[1])
	}
}

func TestTimelineOngoingSegment(t *testing.T) {
	now := at(11, 30)

	active := newSession("a", "Alpha", "",
		seg(at(9, 0), at(10, 0)),
		openSeg(at(10, 30)),
	)
	active.IsActive = true

	got := Timeline([]*models.Session{active}, TimelineOptions{}, now)

	newest := got[0]
	if !newest.IsOngoing {
		t.Errorf("Expected the open segment to be flagged ongoing")
	}

	if !newest.End.Equal(now) {
		t.Errorf(
			"Expected the open segment to clip to now, got end: %v",
			newest.End,
		)
	}
}

func TestTimelineGroupFilterInterleavesOtherWork(t *testing.T) {
	now := at(13, 0)

	sessions := []*models.Session{
		newSession("a", "Deep work", "g1",
			seg(at(9, 0), at(10, 0)),
			seg(at(11, 0), at(12, 0)),
		),
		newSession("b", "Email", "g2", seg(at(10, 10), at(10, 40))),
	}

	got := ascending(Timeline(sessions, TimelineOptions{GroupID: "g1"}, now))

	expected := []string{"Deep work", "Break", "Email", "Break", "Deep work"}

	gotLabels := labels(got)
	if len(gotLabels) != len(expected) {
		t.Fatalf("Expected %v, but got: %v", expected, gotLabels)
	}

	for i := range expected {
		if gotLabels[i] != expected[i] {
			t.Fatalf("Expected %v, but got: %v", expected, gotLabels)
		}
	}

	other := got[2]
	if !other.IsOtherGroup || other.FillColor != otherGroupFill {
		t.Errorf("Expected an other-group slice, got: %+v", other)
	}

	if other.SegmentIndex != -1 {
		t.Errorf(
			"Expected other-group slices to carry no back-reference, got: %d",
			other.SegmentIndex,
		)
	}
}

func TestTimelineGroupFilterWindowSpansAllGroups(t *testing.T) {
	now := at(13, 0)

	// The other group worked before the filtered group started; the
	// window still opens at 08:00 and the leading span renders as
	// other-group work.
	sessions := []*models.Session{
		newSession("a", "Deep work", "g1", seg(at(10, 0), at(11, 0))),
		newSession("b", "Standup", "g2", seg(at(8, 0), at(9, 0))),
	}

	got := ascending(Timeline(sessions, TimelineOptions{GroupID: "g1"}, now))
	if len(got) == 0 {
		t.Fatal("Expected slices, but got none")
	}

	first := got[0]
	if !first.Start.Equal(at(8, 0)) || !first.IsOtherGroup {
		t.Errorf(
			"Expected the window to open with other-group work at 08:00, "+
				"got: %+v",
			first,
		)
	}
}

func TestTimelineNewestFirst(t *testing.T) {
	now := at(13, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "",
			seg(at(9, 0), at(10, 0)),
			seg(at(11, 0), at(12, 0)),
		),
	}

	got := Timeline(sessions, TimelineOptions{}, now)

	for i := 1; i < len(got); i++ {
		if got[i].Start.After(got[i-1].Start) {
			t.Fatalf("Expected newest-first ordering, got: %v", labels(got))
		}
	}
}

func TestTimelineStableTaskColor(t *testing.T) {
	now := at(13, 0)

	sessions := []*models.Session{
		newSession("a", "Alpha", "", seg(at(9, 0), at(10, 0))),
	}

	first := Timeline(sessions, TimelineOptions{}, now)
	second := Timeline(sessions, TimelineOptions{}, now)

	if first[0].FillColor != second[0].FillColor {
		t.Errorf(
			"Expected stable colours across renders, got %s then %s",
			first[0].FillColor,
			second[0].FillColor,
		)
	}
}
