package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/flowtimer/flow/config"
	"github.com/flowtimer/flow/internal/engine"
	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/ui"
	"github.com/flowtimer/flow/stats"
	"github.com/flowtimer/flow/store"
	"github.com/flowtimer/flow/timer"
	"github.com/flowtimer/flow/timetable"
	"github.com/flowtimer/flow/tracker"
)

const (
	envNoColor     = "NO_COLOR"
	envFlowNoColor = "FLOW_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func sessionHelper(ctx *cli.Context) ([]*models.Session, store.DB, error) {
	conf := config.Filter(ctx)

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	sessions, err := db.GetSessions(conf.StartTime, conf.EndTime, conf.GroupID)
	if err != nil {
		return nil, nil, err
	}

	return sessions, db, nil
}

// trackerHelper resolves the config and wires a tracker over the
// store.
func trackerHelper() (*tracker.Tracker, *config.Config, store.DB, error) {
	cfg, err := config.New(config.WithViperConfig(config.ConfigFilePath()))
	if err != nil {
		return nil, nil, nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, nil, err
	}

	return tracker.New(db, cfg.Tracker.DayStartHour), cfg, db, nil
}

// defaultAction starts tracking (or reopens the tracked session) and
// hands control to the interactive timer view.
func defaultAction(ctx *cli.Context) error {
	cfg := config.Tracked()

	ui.DarkTheme = cfg.Display.DarkTheme

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	trk := tracker.New(db, cfg.Tracker.DayStartHour)

	sess, state, err := trk.Current()
	if err != nil {
		return err
	}

	if sess == nil || state == models.StateIdle {
		sess, err = trk.Start(
			ctx.String("name"),
			firstNonEmptyString(ctx.String("group"), cfg.Tracker.DefaultGroup),
		)
		if err != nil {
			return err
		}

		state = models.StateRunning
	}

	t := timer.New(trk, cfg, sess, state)

	return t.Run()
}

// statusAction prints a one-line summary of the tracked session.
func statusAction(_ *cli.Context) error {
	trk, _, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	sess, state, err := trk.Current()
	if err != nil {
		return err
	}

	pterm.Println(tracker.Describe(sess, state))

	return nil
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	cfg := config.Tracked()

	ui.DarkTheme = cfg.Display.DarkTheme

	sessions, db, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	opts := config.Filter(ctx)

	s := &stats.Stats{
		Opts: stats.Opts{
			FilterConfig:   *opts,
			DayStartHour:   cfg.Tracker.DayStartHour,
			BreakThreshold: cfg.Tracker.BreakThreshold,
		},
		DB: db,
	}

	if ctx.Bool("json") {
		s.Compute(sessions, time.Now())

		b, err := s.ToJSON()
		if err != nil {
			return err
		}

		fmt.Println(string(b))

		return nil
	}

	return s.Show(sessions, time.Now())
}

// timetableAction renders the reconstructed timeline for a period.
func timetableAction(ctx *cli.Context) error {
	cfg := config.Tracked()

	ui.DarkTheme = cfg.Display.DarkTheme

	conf := config.Filter(ctx)

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	// The group filter is applied by the reconstruction itself, which
	// still needs the other groups' sessions to interleave them.
	sessions, err := db.GetSessions(conf.StartTime, conf.EndTime, "")
	if err != nil {
		return err
	}

	live := sessions[:0]

	for _, sess := range sessions {
		if !sess.Trashed() {
			live = append(live, sess)
		}
	}

	tt := &timetable.Timetable{
		Sessions: live,
		Opts: engine.TimelineOptions{
			GroupID:        conf.GroupID,
			DayStartHour:   cfg.Tracker.DayStartHour,
			BreakThreshold: cfg.Tracker.BreakThreshold,
		},
		TwentyFourHour: cfg.Display.TwentyFourHour,
	}

	return tt.Show(os.Stdout, time.Now())
}

// listAction prints a table of the sessions started within a time
// period.
func listAction(ctx *cli.Context) error {
	sessions, db, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	trashedOnly := ctx.Bool("trashed")

	filtered := sessions[:0]

	for _, sess := range sessions {
		if sess.Trashed() == trashedOnly {
			filtered = append(filtered, sess)
		}
	}

	tracker.SortByCreation(filtered)

	if ctx.Bool("json") {
		b, err := json.Marshal(filtered)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	return listSessions(filtered)
}

// resumeAction reopens an archived session, splitting it when a day
// boundary has passed since it was created.
func resumeAction(ctx *cli.Context) error {
	trk, cfg, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	id := ctx.Args().First()

	if ctx.Bool("last") {
		id, err = lastResumableID(db)
		if err != nil {
			return err
		}
	}

	if id == "" {
		return errMissingID
	}

	if ctx.Bool("release") {
		sess, err := trk.ReleaseHold(id)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("%q marked as completed", sess.Name)

		return nil
	}

	sess, err := trk.Resume(id)
	if err != nil {
		return err
	}

	t := timer.New(trk, cfg, sess, models.StateRunning)

	return t.Run()
}

// deleteAction trashes a session, or soft-deletes one of its segments
// when --segment is given.
func deleteAction(ctx *cli.Context) error {
	trk, _, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	if index := ctx.Int("segment"); index >= 0 {
		return trk.DeleteSegment(id, index)
	}

	sess, err := db.GetSession(id)
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("%q will be moved to the trash", sess.Name)) {
		return nil
	}

	return trk.TrashSession(id)
}

// removeGapAction erases a recorded break so that it stops counting
// as rest.
func removeGapAction(ctx *cli.Context) error {
	trk, _, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	start, err := config.ParseTime(ctx.String("start"))
	if err != nil {
		return err
	}

	end, err := config.ParseTime(ctx.String("end"))
	if err != nil {
		return err
	}

	return trk.RemoveGap(id, start, end)
}

// restoreAction brings back a trashed session or a soft-deleted
// segment.
func restoreAction(ctx *cli.Context) error {
	trk, _, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	if index := ctx.Int("segment"); index >= 0 {
		return trk.RestoreSegment(id, index)
	}

	return trk.RestoreSession(id)
}

// purgeAction permanently deletes everything in the trash.
func purgeAction(_ *cli.Context) error {
	trk, _, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	if !confirm("All trashed sessions will be deleted permanently") {
		return nil
	}

	n, err := trk.PurgeTrash()
	if err != nil {
		return err
	}

	pterm.Success.Printfln("%d session(s) purged", n)

	return nil
}

func groupListAction(_ *cli.Context) error {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	groups, err := db.GetGroups()
	if err != nil {
		return err
	}

	return listGroups(groups)
}

func groupAddAction(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return errMissingName
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	return db.UpdateGroup(&models.Group{
		ID:    uuid.NewString(),
		Name:  name,
		Color: ctx.String("color"),
	})
}

func groupRenameAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	name := ctx.Args().Get(1)

	if id == "" || name == "" {
		return errMissingName
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	groups, err := db.GetGroups()
	if err != nil {
		return err
	}

	for _, group := range groups {
		if group.ID == id {
			group.Name = name

			return db.UpdateGroup(group)
		}
	}

	return store.ErrGroupNotFound
}

func groupDeleteAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	return db.DeleteGroup(id)
}

// renameAction changes a session's name.
func renameAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	name := ctx.Args().Get(1)

	if id == "" || name == "" {
		return errMissingName
	}

	trk, _, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	return trk.Rename(id, name)
}

// setGroupAction reassigns a session to a group.
func setGroupAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	groupID := ctx.Args().Get(1)

	if id == "" {
		return errMissingID
	}

	trk, _, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	return trk.SetGroup(id, groupID)
}

// memoAction attaches a note to a session.
func memoAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	memo := ctx.Args().Get(1)

	if id == "" {
		return errMissingID
	}

	trk, _, db, err := trackerHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	return trk.SetMemo(id, memo)
}

// editConfigAction opens the flow config file in the user's default
// text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	_ = config.Tracked()

	cmd := exec.Command(editor, config.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/flowtimer/flow/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if FLOW_NO_COLOR is set
	if _, exists := os.LookupEnv(envFlowNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting flow")

	return nil
}
