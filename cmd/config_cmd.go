package cmd

import (
	"fmt"
	"net/url"

	"github.com/theirongolddev/paisa/internal/config"
	"github.com/theirongolddev/paisa/internal/logging"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	path := configPath()
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	if flagAPI != "" {
		cfg.API.BaseURL = flagAPI
	}

	fmt.Printf("  Config file: %s\n", path)
	if config.Exists(path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [API]")
	fmt.Printf("    Base URL: %s\n", cfg.API.BaseURL)
	fmt.Printf("    Timeout:  %ds\n", cfg.API.TimeoutSec)
	fmt.Println()

	fmt.Println("  [Session]")
	fmt.Printf("    Store: %s\n", cfg.Session.Store)
	switch cfg.Session.Store {
	case config.StoreRedis:
		fmt.Printf("    Redis: %s\n", maskURL(cfg.Session.RedisURL))
	default:
		fmt.Printf("    Database: %s\n", cfg.SessionDBPath())
	}
	fmt.Println()

	fmt.Println("  [Client]")
	fmt.Printf("    Lenient amounts: %v\n", cfg.Client.LenientAmounts)
	fmt.Printf("    Recent limit:    %d\n", cfg.Client.RecentLimit)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = logging.DefaultFile()
	}
	fmt.Printf("    File:  %s\n", logFile)
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		fmt.Printf("  %v\n\n", err)
	}
	fmt.Println("  Run `paisa setup` to reconfigure.")
	return nil
}

// maskURL hides the password of a connection URL.
func maskURL(raw string) string {
	if raw == "" {
		return "not configured"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "****"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
