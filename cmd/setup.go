package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/theirongolddev/paisa/internal/config"
	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	path := configPath()
	cfg, _ := config.LoadFrom(path)

	timeout := strconv.Itoa(cfg.API.TimeoutSec)
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to paisa").
				Description("Point the client at your Paisa backend.\nRun `paisa sandbox` for an offline demo server."),
			huh.NewInput().
				Title("Backend URL").
				Value(&cfg.API.BaseURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Request timeout (seconds)").
				Value(&timeout).
				Validate(validatePositive),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should the login be kept?").
				Options(
					huh.NewOption("Local SQLite file", config.StoreSQLite),
					huh.NewOption("Redis (shared between machines)", config.StoreRedis),
				).
				Value(&cfg.Session.Store),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Redis URL").
				Placeholder("redis://localhost:6379/0").
				Value(&cfg.Session.RedisURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required for the redis store")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return cfg.Session.Store != config.StoreRedis }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Treat unparsable amounts as zero?").
				Description("Lenient mode matches the web client. Strict mode rejects them.").
				Value(&cfg.Client.LenientAmounts),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	cfg.API.TimeoutSec, _ = strconv.Atoi(strings.TrimSpace(timeout))
	if cfg.Session.Store != config.StoreRedis {
		cfg.Session.RedisURL = ""
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.SaveTo(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `paisa setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("enter an http:// or https:// URL")
	}
	return nil
}

func validatePositive(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}
