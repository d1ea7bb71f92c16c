package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/flowtimer/flow/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the flow app instance.
func Get() *cli.App {
	flowApp := &cli.App{
		Name: "flow",
		Usage: `
		Flow is a work-session tracker for the command-line. It records when
		you actually work, then reconstructs your day as a timeline and scores
		how focused it was.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name: "stats",
				Usage: `
				Track your progress with detailed statistics reporting. Defaults to a
				reporting period of 7 days`,
				Action: statsAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					groupFlag,
					jsonFlag,
				},
			},
			{
				Name:   "timetable",
				Usage:  "Reconstruct a day as a chronological timeline of work, breaks, and pauses",
				Action: timetableAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					groupFlag,
				},
			},
			{
				Name:   "list",
				Usage:  "List sessions within a time period",
				Action: listAction,
				Flags: []cli.Flag{
					periodFlag,
					startFlag,
					endFlag,
					groupFlag,
					jsonFlag,
					trashedFlag,
				},
			},
			{
				Name:   "resume",
				Usage:  "Resume an archived session by id, splitting it if a day boundary has passed",
				Action: resumeAction,
				Flags: []cli.Flag{
					lastFlag,
					releaseFlag,
				},
			},
			{
				Name:   "delete",
				Usage:  "Move a session to the trash, or soft-delete one of its segments",
				Action: deleteAction,
				Flags:  []cli.Flag{segmentFlag},
			},
			{
				Name:   "remove-gap",
				Usage:  "Erase a break from the record so it stops counting as rest",
				Action: removeGapAction,
				Flags: []cli.Flag{
					startFlag,
					endFlag,
				},
			},
			{
				Name:   "restore",
				Usage:  "Restore a trashed session or a soft-deleted segment",
				Action: restoreAction,
				Flags:  []cli.Flag{segmentFlag},
			},
			{
				Name:   "purge",
				Usage:  "Permanently delete everything in the trash",
				Action: purgeAction,
			},
			{
				Name:   "groups",
				Usage:  "Manage session groups",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all groups",
						Action: groupListAction,
					},
					{
						Name:   "add",
						Usage:  "Create a group",
						Action: groupAddAction,
						Flags:  []cli.Flag{colorFlag},
					},
					{
						Name:   "rename",
						Usage:  "Rename a group",
						Action: groupRenameAction,
					},
					{
						Name:   "delete",
						Usage:  "Delete a group",
						Action: groupDeleteAction,
					},
				},
			},
			{
				Name:   "rename",
				Usage:  "Rename a session",
				Action: renameAction,
			},
			{
				Name:   "set-group",
				Usage:  "Move a session into a group",
				Action: setGroupAction,
			},
			{
				Name:   "memo",
				Usage:  "Attach a note to a session",
				Action: memoAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			nameFlag,
			groupFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return flowApp
}
