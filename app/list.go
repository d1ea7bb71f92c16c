package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/flowtimer/flow/internal/engine"
	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
	"github.com/flowtimer/flow/internal/ui"
)

const (
	noSessionsMsg = "No sessions found for the specified time range"
	noGroupsMsg   = "No groups have been created yet"
)

// shortID abbreviates a session id for table display.
func shortID(id string) string {
	const width = 8

	if len(id) <= width {
		return id
	}

	return id[:width]
}

func statusText(sess *models.Session) string {
	switch {
	case sess.Trashed():
		return ui.Red("trashed")
	case sess.IsActive:
		return ui.Cyan("active")
	case !sess.IsFinished:
		return ui.Yellow("paused")
	case sess.CompletionStatus == models.OnHold:
		return ui.Yellow("on hold")
	default:
		return ui.Green("completed")
	}
}

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(w io.Writer, sessions []*models.Session) {
	now := time.Now()

	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		work := engine.TotalDuration(sess.Segments, now)

		row := []string{
			fmt.Sprintf("%d", i+1),
			shortID(sess.ID),
			sess.Name,
			sess.CreatedAt.Format("Jan 02, 2006 03:04 PM"),
			timeutil.FormatDurationHM(work),
			statusText(sess),
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "ID", "NAME", "CREATED", "WORK", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listSessions prints out a table of sessions.
func listSessions(sessions []*models.Session) error {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(os.Stdout, sessions)

	return nil
}

// listGroups prints out a table of groups.
func listGroups(groups []*models.Group) error {
	if len(groups) == 0 {
		pterm.Info.Println(noGroupsMsg)
		return nil
	}

	tableBody := make([][]string, len(groups))

	for i := range groups {
		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			shortID(groups[i].ID),
			groups[i].Name,
			groups[i].Color,
		}
	}

	tableBody = append([][]string{
		{"#", "ID", "NAME", "COLOR"},
	}, tableBody...)

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}
