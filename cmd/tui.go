package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/paisa/internal/logging"
	"github.com/theirongolddev/paisa/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Logs must not reach the terminal while the alternate screen is up.
	flagVerbose = false

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(cmd.Context(), tui.Options{
		Session:         a.sess,
		Accounts:        a.accounts,
		Transactions:    a.transactions,
		Budget:          a.budget,
		Dashboard:       a.dashboard,
		Recommendations: a.recommendations,
		Admin:           a.admin,
		Logger:          a.log.WithComponent(logging.ComponentTUI).Logger,
		RecentLimit:     a.cfg.Client.RecentLimit,
		Theme:           a.cfg.Appearance.Theme,
		Timeout:         a.timeout(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
