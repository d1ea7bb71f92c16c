package app

import "github.com/urfave/cli/v2"

var (
	nameFlag = &cli.StringFlag{
		Name:    "name",
		Aliases: []string{"n"},
		Usage:   "Name the new session. Defaults to an auto-numbered task name",
	}

	groupFlag = &cli.StringFlag{
		Name:    "group",
		Aliases: []string{"g"},
		Usage:   "Restrict to a single group, or assign a new session to it",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days, all-time",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Start of the reporting period (e.g. '2024-03-12' or 'last monday')",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "End of the reporting period. Defaults to now",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output in JSON format",
	}

	trashedFlag = &cli.BoolFlag{
		Name:  "trashed",
		Usage: "List only trashed sessions",
	}

	lastFlag = &cli.BoolFlag{
		Name:  "last",
		Usage: "Resume the most recently created resumable session",
	}

	releaseFlag = &cli.BoolFlag{
		Name:  "release",
		Usage: "Mark an on-hold session completed without restarting it",
	}

	segmentFlag = &cli.IntFlag{
		Name:    "segment",
		Aliases: []string{"s"},
		Usage:   "Target a single segment by its index instead of the whole session",
		Value:   -1,
	}

	colorFlag = &cli.StringFlag{
		Name:  "color",
		Usage: "Display colour for the new group (hex, e.g. '#a7f3d0')",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}
)
