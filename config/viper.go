package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keyDayStartHour   = "tracker.day_start_hour"
	keyBreakThreshold = "tracker.break_threshold"
	keyDefaultGroup   = "tracker.default_group"
	keyDarkTheme      = "display.dark_theme"
	keyTwentyFourHour = "display.24hr_clock"
	keySessionCmd     = "settings.cmd"
)

// WithViperConfig returns an Option that loads configuration from
// Viper, writing a default config file on the first run.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyDayStartHour, 6)
	v.SetDefault(keyBreakThreshold, "1m")
	v.SetDefault(keyDefaultGroup, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keySessionCmd, "")

	// Carry prompt answers into the file that is about to be written.
	if c.promptDone {
		v.Set(keyDayStartHour, c.Tracker.DayStartHour)
		v.Set(keyBreakThreshold, c.Tracker.BreakThreshold.String())
		v.Set(keyDarkTheme, c.Display.DarkTheme)
	}
}

// loadViperConfig loads configuration from Viper into the Config
// struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	c.Tracker.DayStartHour = v.GetInt(keyDayStartHour)
	if c.Tracker.DayStartHour < 0 || c.Tracker.DayStartHour > 23 {
		return fmt.Errorf(
			"invalid day start hour: %d",
			c.Tracker.DayStartHour,
		)
	}

	threshold, err := parseDuration(v.GetString(keyBreakThreshold))
	if err != nil {
		return fmt.Errorf("loading break threshold failed: %w", err)
	}

	c.Tracker.BreakThreshold = threshold
	c.Tracker.DefaultGroup = v.GetString(keyDefaultGroup)
	c.Display.DarkTheme = v.GetBool(keyDarkTheme)
	c.Display.TwentyFourHour = v.GetBool(keyTwentyFourHour)
	c.Settings.Cmd = v.GetString(keySessionCmd)

	return nil
}

// parseDuration parses duration strings, treating a bare number as
// minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	mins, err := time.ParseDuration(s + "m")
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	return mins, nil
}
