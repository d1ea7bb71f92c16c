package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
███████╗██╗      ██████╗ ██╗    ██╗
██╔════╝██║     ██╔═══██╗██║    ██║
█████╗  ██║     ██║   ██║██║ █╗ ██║
██╔══╝  ██║     ██║   ██║██║███╗██║
██║     ███████╗╚██████╔╝╚███╔███╔╝
╚═╝     ╚══════╝ ╚═════╝  ╚══╝╚══╝ `

// PromptOptions holds the user's responses to the configuration
// prompts.
type PromptOptions struct {
	DayStartHour   int
	BreakThreshold time.Duration
	DarkTheme      bool
}

// WithPromptConfig returns an Option that configures settings via
// interactive prompts on the first run.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{DarkTheme: true}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure Flow for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'flow edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("When does your work day start?").
				Description("Sessions before this hour count towards the previous day").
				Options(
					huh.NewOption("Midnight", 0),
					huh.NewOption("5 AM", 5),
					huh.NewOption("6 AM", 6).Selected(true),
					huh.NewOption("9 AM", 9),
				).
				Value(&opts.DayStartHour),
		),
		huh.NewGroup(
			huh.NewSelect[time.Duration]().
				Title("Minimum pause that counts as a break").
				Options(
					huh.NewOption("30 seconds", 30*time.Second),
					huh.NewOption("1 minute", time.Minute).Selected(true),
					huh.NewOption("2 minutes", 2*time.Minute),
					huh.NewOption("5 minutes", 5*time.Minute),
				).
				Value(&opts.BreakThreshold),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use a dark theme?").
				Value(&opts.DarkTheme),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the
// configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Tracker.DayStartHour = opts.DayStartHour
	c.Tracker.BreakThreshold = opts.BreakThreshold
	c.Display.DarkTheme = opts.DarkTheme
	c.promptDone = true
}
