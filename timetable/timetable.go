// Package timetable renders the reconstructed session timeline as a
// chronological ledger for the terminal.
package timetable

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/flowtimer/flow/internal/engine"
	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
	"github.com/flowtimer/flow/internal/ui"
)

const noEntriesMsg = "No entries to display"

// Timetable renders timeline slices for one reporting window.
type Timetable struct {
	Sessions []*models.Session
	Opts     engine.TimelineOptions

	// TwentyFourHour switches the clock format of slice bounds.
	TwentyFourHour bool
}

func (t *Timetable) clock(ts time.Time) string {
	if t.TwentyFourHour {
		return ts.Format("15:04")
	}

	return ts.Format("03:04 PM")
}

// kindLabel names the slice type for the table's kind column.
func kindLabel(slice engine.Slice) string {
	switch {
	case slice.IsDeleted:
		return ui.Red("deleted")
	case slice.IsBreak:
		return ui.Green("break")
	case slice.IsHardStop:
		return ui.Yellow("paused")
	case slice.IsOtherGroup:
		return ui.Magenta("other group")
	case slice.IsOngoing:
		return ui.Cyan("ongoing")
	case slice.IsOnHold:
		return ui.Yellow("on hold")
	default:
		return ui.Highlight("work")
	}
}

// Show prints the timeline, newest entry first, covering the window
// spanned by the given sessions.
func (t *Timetable) Show(w io.Writer, now time.Time) error {
	slices := engine.Timeline(t.Sessions, t.Opts, now)

	if len(slices) == 0 {
		pterm.Info.Println(noEntriesMsg)
		return nil
	}

	data := [][]string{
		{"#", "start", "end", "duration", "entry", "kind"},
	}

	for i, slice := range slices {
		end := t.clock(slice.End)
		if slice.IsOngoing {
			end = "--:--"
		}

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			t.clock(slice.Start),
			end,
			timeutil.FormatDurationHM(slice.Duration),
			slice.Label,
			kindLabel(slice),
		})
	}

	ui.PrintTable(data, w)

	return nil
}
