// Package stats reports work session statistics.
package stats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/flowtimer/flow/config"
	"github.com/flowtimer/flow/internal/engine"
	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
	"github.com/flowtimer/flow/internal/ui"
	"github.com/flowtimer/flow/store"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for the specified time range"
)

// Opts bundles the reporting filter with the engine parameters that
// shape the derived numbers.
type Opts struct {
	config.FilterConfig

	DayStartHour   int
	BreakThreshold time.Duration
}

// Stats computes and renders the statistics report for a time period.
type Stats struct {
	Opts Opts
	DB   store.DB

	Summary engine.RangeSummary
	groups  map[string]string
	longest time.Duration
}

// Compute derives the range summary from the given sessions. The
// start of an unbounded (all-time) report is pinned to the earliest
// session so the day buckets stay finite.
func (s *Stats) Compute(sessions []*models.Session, now time.Time) {
	if s.Opts.StartTime.IsZero() {
		start := now

		for _, sess := range sessions {
			if sess.CreatedAt.Before(start) {
				start = sess.CreatedAt
			}
		}

		s.Opts.StartTime = timeutil.RoundToStart(start)
	}

	if s.Opts.EndTime.IsZero() {
		s.Opts.EndTime = now
	}

	s.Summary = engine.Summarize(sessions, engine.SummarizeOptions{
		Start:          s.Opts.StartTime,
		End:            s.Opts.EndTime,
		GroupID:        s.Opts.GroupID,
		DayStartHour:   s.Opts.DayStartHour,
		BreakThreshold: s.Opts.BreakThreshold,
	}, now)

	s.longest = engine.LongestStretch(sessions, now)

	s.groups = make(map[string]string)

	groups, err := s.DB.GetGroups()
	if err == nil {
		for _, g := range groups {
			s.groups[g.ID] = g.Name
		}
	}
}

// ToJSON returns the computed summary as JSON.
func (s *Stats) ToJSON() ([]byte, error) {
	return json.Marshal(s.Summary)
}

func (s *Stats) getSummary() string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	timeLogged := fmt.Sprintf(
		"Time worked: %s\n",
		//nolint:gomnd // limit to first 2 units
		ui.Green(durafmt.Parse(s.Summary.TotalWork).LimitToUnit("hours").LimitFirstN(2)),
	)

	breakTime := fmt.Sprintf(
		"Break time: %s\n",
		//nolint:gomnd // limit to first 2 units
		ui.Green(durafmt.Parse(s.Summary.TotalBreak).LimitToUnit("hours").LimitFirstN(2)),
	)

	longest := fmt.Sprintf(
		"Longest stretch: %s\n",
		//nolint:gomnd // limit to first 2 units
		ui.Green(durafmt.Parse(s.longest).LimitToUnit("hours").LimitFirstN(2)),
	)

	sessions := fmt.Sprintln("Sessions:", ui.Green(s.Summary.SessionCount))

	breaks := fmt.Sprintln("Breaks taken:", ui.Green(s.Summary.BreakCount))

	focus := fmt.Sprintln(
		"Average focus:",
		ui.Green(
			fmt.Sprintf(
				"%d (%s, %s)",
				s.Summary.Avg.FocusIndex,
				engine.FocusGrade(s.Summary.Avg.FocusIndex),
				engine.FocusLabel(s.Summary.Avg.FocusIndex),
			),
		),
	)

	return header + timeLogged + breakTime + longest + sessions + breaks + focus
}

func (s *Stats) getAverages() string {
	header := fmt.Sprintf("\n%s\n", ui.Blue("Daily averages"))

	note := fmt.Sprintf(
		"Across %s active days\n",
		ui.Green(s.Summary.ActiveDays),
	)

	timeLogged := fmt.Sprintf(
		"Time worked: %s\n",
		//nolint:gomnd // limit to first 2 units
		ui.Green(durafmt.Parse(s.Summary.Avg.Work).LimitToUnit("hours").LimitFirstN(2)),
	)

	breakTime := fmt.Sprintf(
		"Break time: %s\n",
		//nolint:gomnd // limit to first 2 units
		ui.Green(durafmt.Parse(s.Summary.Avg.Break).LimitToUnit("hours").LimitFirstN(2)),
	)

	sessions := fmt.Sprintf(
		"Sessions: %s\n",
		ui.Green(fmt.Sprintf("%.1f", s.Summary.Avg.Sessions)),
	)

	return header + note + timeLogged + breakTime + sessions
}

// getGroups retrieves the per-group time breakdown for the current
// time period.
func (s *Stats) getGroups(sessions []*models.Session, now time.Time) string {
	byGroup := make(map[string][]*models.Session)

	for _, sess := range sessions {
		if sess.Trashed() {
			continue
		}

		name, ok := s.groups[sess.GroupID]
		if !ok {
			name = models.GroupUnassigned
		}

		byGroup[name] = append(byGroup[name], sess)
	}

	totals := make(map[string]time.Duration, len(byGroup))

	for name, group := range byGroup {
		totals[name] = engine.SessionsDuration(group, now)
	}

	if len(totals) == 0 {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Groups")))

	type keyValue struct {
		key   string
		value time.Duration
	}

	kv := make([]keyValue, 0, len(totals))
	for k, v := range totals {
		kv = append(kv, keyValue{k, v})
	}

	sort.SliceStable(kv, func(i, j int) bool {
		return kv[i].value > kv[j].value
	})

	for _, v := range kv {
		//nolint:gomnd // limit to first 2 units
		duration := durafmt.Parse(v.value).LimitToUnit("hours").LimitFirstN(2)

		builder.WriteString(
			fmt.Sprintf("%s: %s\n", v.key, ui.Green(duration)),
		)
	}

	return builder.String()
}

// getDailyChart renders worked minutes per day.
func (s *Stats) getDailyChart() string {
	var bars pterm.Bars

	for _, bucket := range s.Summary.Buckets {
		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(bucket.Work.Minutes()),
			Label: bucket.Date.Format("Jan 02"),
		})
	}

	if len(bars) == 0 {
		return ""
	}

	header := ui.Blue("\nDaily breakdown (minutes)")

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// getFocusChart renders the focus score per active day.
func (s *Stats) getFocusChart() string {
	var bars pterm.Bars

	for _, bucket := range s.Summary.Buckets {
		if bucket.Work == 0 {
			continue
		}

		bars = append(bars, pterm.Bar{
			Value: bucket.FocusIndex,
			Label: bucket.Date.Format("Jan 02"),
		})
	}

	if len(bars) == 0 {
		return ""
	}

	header := ui.Blue("\nFocus score (0-100)")

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// Show displays the relevant statistics for the set time period after
// making the necessary calculations.
func (s *Stats) Show(sessions []*models.Session, now time.Time) error {
	s.Compute(sessions, now)

	if s.Summary.SessionCount == 0 && s.Summary.TotalBreak == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	reportingStart := s.Opts.StartTime.Format("January 02, 2006")
	reportingEnd := s.Opts.EndTime.Format("January 02, 2006")
	timePeriod := "Reporting period: " + reportingStart + " - " + reportingEnd

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", timePeriod)

	output := fmt.Sprint(
		header,
		s.getSummary(),
		s.getAverages(),
		s.getGroups(sessions, now),
		s.getDailyChart(),
		s.getFocusChart(),
	)

	fmt.Fprintln(
		config.Stdout,
		strings.TrimSpace(output),
	)

	return nil
}
