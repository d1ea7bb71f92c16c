package config

import (
	"errors"
	"os"
	"slices"
	"strings"
	"time"

	dateparser "github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/flowtimer/flow/internal/models"
	"github.com/flowtimer/flow/internal/timeutil"
)

var (
	errInvalidDateRange = errors.New(
		"the end date must not be earlier than the start date",
	)

	errInvalidPeriod = errors.New(
		"please provide a valid time period",
	)

	errInvalidStartDate = errors.New(
		"please provide a valid start date",
	)
)

// FilterConfig represents a configuration to filter sessions in the
// database by their creation time and assigned group.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
	GroupID   string
}

// getTimeRange returns the start and end time according to the
// specified time period.
func getTimeRange(period timeutil.Period) (start, end time.Time) {
	now := time.Now()

	start = timeutil.RoundToStart(now)

	end = timeutil.RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
		end = timeutil.RoundToEnd(start)

		return
	case timeutil.PeriodAllTime:
		start = time.Time{}
		return
	default:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
	}

	return
}

// ParseTime resolves a natural-language or formatted date string,
// e.g. "2024-03-12", "yesterday", or "3 days ago".
func ParseTime(s string) (time.Time, error) {
	return parseDate(s)
}

func parseDate(s string) (time.Time, error) {
	dt, err := dateparser.Parse(nil, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// setFilterConfig updates the filter configuration from command-line
// arguments.
func setFilterConfig(ctx *cli.Context) (*FilterConfig, error) {
	filterCfg := &FilterConfig{
		GroupID: models.GroupAll,
	}

	if ctx.String("group") != "" {
		filterCfg.GroupID = ctx.String("group")
	}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(period)

		return filterCfg, nil
	}

	start := ctx.String("start")
	if start != "" {
		dateTime, err := parseDate(start)
		if err != nil {
			return nil, err
		}

		filterCfg.StartTime = dateTime
	}

	filterCfg.EndTime = time.Now()

	end := ctx.String("end")
	if end != "" {
		dateTime, err := parseDate(end)
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = dateTime
	}

	if start == "" && end == "" {
		// No period and no explicit bounds: default to everything.
		return filterCfg, nil
	}

	if filterCfg.StartTime.IsZero() {
		return nil, errInvalidStartDate
	}

	if filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

// Filter initializes and returns a configuration to filter sessions
// from command-line arguments.
func Filter(ctx *cli.Context) *FilterConfig {
	cfg, err := setFilterConfig(ctx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return cfg
}
