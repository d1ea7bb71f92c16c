// Package config loads and persists the application configuration,
// resolving file paths through XDG and merging config-file values
// with command-line overrides.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Tracker  TrackerConfig
		Display  DisplayConfig
		Settings SettingsConfig
		System   SystemConfig

		// promptDone marks that first-run prompt answers should be
		// written into the new config file.
		promptDone bool
	}

	// TrackerConfig holds the knobs the derivation engine depends on.
	TrackerConfig struct {
		// DayStartHour shifts the boundary between work days. With a
		// value of 6, work at 01:00 still belongs to yesterday.
		DayStartHour int
		// BreakThreshold is the minimum idle gap recorded as a break.
		BreakThreshold time.Duration
		// DefaultGroup is the group newly started sessions join.
		DefaultGroup string
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool
		TwentyFourHour bool
	}

	// SettingsConfig holds behavioural settings.
	SettingsConfig struct {
		// Cmd is executed after each finished session.
		Cmd string
	}

	// SystemConfig holds file path settings.
	SystemConfig struct {
		ConfigPath string
		DBPath     string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.1"

var (
	configDir      = "flow"
	configFileName = "config.yml"
	dbFileName     = "flow.db"
	logFileName    = "flow.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var once sync.Once

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves the config, database, and log locations.
// Setting FLOW_ENV switches to suffixed filenames so development runs
// never touch real data.
func InitializePaths() {
	flowEnv := strings.TrimSpace(os.Getenv("FLOW_ENV"))
	if flowEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", flowEnv)
		dbFileName = fmt.Sprintf("flow_%s.db", flowEnv)
		logFileName = fmt.Sprintf("flow_%s.log", flowEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		System: SystemConfig{
			ConfigPath: configFilePath,
			DBPath:     dbFilePath,
		},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	return cfg, nil
}

var trackerCfg *Config

// Tracked returns the singleton application config, loading it on
// first use from the interactive prompt (first run only) and the
// config file.
func Tracked() *Config {
	once.Do(func() {
		cfg, err := New(
			WithPromptConfig(configFilePath),
			WithViperConfig(configFilePath),
		)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}

		trackerCfg = cfg
	})

	return trackerCfg
}
