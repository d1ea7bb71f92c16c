package timer

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/flowtimer/flow/internal/engine"
	"github.com/flowtimer/flow/internal/models"
)

type keymap struct {
	togglePlay key.Binding
	hardStop   key.Binding
	finish     key.Binding
	hold       key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	hardStop: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop, no break"),
	),
	finish: key.NewBinding(
		key.WithKeys("enter", "f"),
		key.WithHelp("enter", "finish"),
	),
	hold: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "put on hold"),
	),
	quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// handleTick refreshes the derived work total on each clock tick.
func (t *Timer) handleTick(msg stopwatch.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	t.clock, cmd = t.clock.Update(msg)

	t.elapsed = engine.TotalDuration(t.Current.Segments, time.Now())

	return t, cmd
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case stopwatch.TickMsg:
		return t.handleTick(msg)

	case stopwatch.StartStopMsg:
		t.clock, cmd = t.clock.Update(msg)

		return t, cmd

	case tea.KeyMsg:
		slog.Info(spew.Sdump(msg))

		switch {
		case key.Matches(msg, defaultKeymap.togglePlay):
			return t.togglePlay()

		case key.Matches(msg, defaultKeymap.hardStop):
			return t.hardStop()

		case key.Matches(msg, defaultKeymap.finish):
			return t.finish(models.Completed)

		case key.Matches(msg, defaultKeymap.hold):
			return t.finish(models.OnHold)

		case key.Matches(msg, defaultKeymap.quit):
			// The snapshot stays in the database, so a running
			// session keeps accruing time until it is paused or
			// finished from another invocation.
			return t, tea.Batch(tea.ClearScreen, tea.Quit)
		}
	}

	return t, nil
}
