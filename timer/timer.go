// Package timer runs the interactive stopwatch view for the tracked
// session.
package timer

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"

	"github.com/flowtimer/flow/config"
	"github.com/flowtimer/flow/internal/engine"
	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/tracker"
)

// Timer is the bubbletea model wrapping the session tracker. All
// state changes go through the tracker so an interrupted run can be
// resumed from the persisted snapshot.
type Timer struct {
	tracker *tracker.Tracker
	cfg     *config.Config

	Current *models.Session
	State   models.TimerState

	clock   stopwatch.Model
	help    help.Model
	elapsed time.Duration

	finished bool
	err      error
}

// New initialises the timer view around an already tracked session.
func New(trk *tracker.Tracker, cfg *config.Config, sess *models.Session, state models.TimerState) *Timer {
	return &Timer{
		tracker: trk,
		cfg:     cfg,
		Current: sess,
		State:   state,
		clock:   stopwatch.NewWithInterval(time.Second),
		help:    help.New(),
		elapsed: engine.TotalDuration(sess.Segments, time.Now()),
	}
}

func (t *Timer) Init() tea.Cmd {
	if t.State == models.StateRunning {
		return t.clock.Init()
	}

	return nil
}

// Run blocks until the view exits.
func (t *Timer) Run() error {
	_, err := tea.NewProgram(t).Run()
	if err != nil {
		return err
	}

	return t.err
}

// runFinishCmd executes the configured post-session command.
func (t *Timer) runFinishCmd() error {
	finishCmd := t.cfg.Settings.Cmd
	if finishCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(finishCmd)
	if err != nil {
		return fmt.Errorf("unable to parse settings.cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

func (t *Timer) togglePlay() (tea.Model, tea.Cmd) {
	switch t.State {
	case models.StateRunning:
		sess, err := t.tracker.Pause()
		if err != nil {
			t.err = err
			return t, tea.Quit
		}

		t.Current = sess
		t.State = models.StatePaused

		return t, t.clock.Stop()
	case models.StatePaused, models.StateStopped:
		sess, err := t.tracker.Start("", "")
		if err != nil {
			t.err = err
			return t, tea.Quit
		}

		t.Current = sess
		t.State = models.StateRunning

		return t, t.clock.Start()
	}

	return t, nil
}

func (t *Timer) hardStop() (tea.Model, tea.Cmd) {
	sess, err := t.tracker.HardStop()
	if err != nil {
		t.err = err
		return t, tea.Quit
	}

	t.Current = sess
	t.State = models.StateStopped

	return t, t.clock.Stop()
}

func (t *Timer) finish(status models.CompletionStatus) (tea.Model, tea.Cmd) {
	sess, err := t.tracker.Finish(status)
	if err != nil {
		t.err = err
		return t, tea.Quit
	}

	t.Current = sess
	t.State = models.StateIdle
	t.finished = true
	t.elapsed = engine.TotalDuration(sess.Segments, time.Now())

	t.err = t.runFinishCmd()

	return t, tea.Batch(tea.ClearScreen, tea.Quit)
}
