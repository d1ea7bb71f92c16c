package timer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
)

var (
	baseStyle = lipgloss.NewStyle().
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD866"))

	stoppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func (t *Timer) stateView() string {
	switch t.State {
	case models.StateRunning:
		idx, ok := t.Current.OpenSegment()
		if !ok {
			return ""
		}

		var clockFormat string
		if t.cfg.Display.TwentyFourHour {
			clockFormat = "15:04"
		} else {
			clockFormat = "03:04 PM"
		}

		return hintStyle.Render(
			"tracking since " + t.Current.Segments[idx].Start.Format(clockFormat),
		)
	case models.StatePaused:
		return pausedStyle.Render("[Paused]")
	case models.StateStopped:
		return stoppedStyle.Render("[Stopped]")
	}

	return ""
}

func (t *Timer) helpView() string {
	bindings := []key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.finish,
		defaultKeymap.quit,
	}

	if t.State == models.StateRunning || t.State == models.StatePaused {
		bindings = []key.Binding{
			defaultKeymap.togglePlay,
			defaultKeymap.hardStop,
			defaultKeymap.finish,
			defaultKeymap.hold,
			defaultKeymap.quit,
		}
	}

	return t.help.ShortHelpView(bindings)
}

func (t *Timer) View() string {
	if t.finished {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(t.Current.Name))
	s.WriteString("  ")
	s.WriteString(t.stateView())
	s.WriteString("\n\n")
	s.WriteString(clockStyle.Render(timeutil.FormatDuration(t.elapsed)))
	s.WriteString("\n\n")
	s.WriteString(t.helpView())

	if t.err != nil {
		s.WriteString("\n\n" + errStyle.Render(t.err.Error()))
	}

	return baseStyle.Render(s.String())
}
