package cmd

import (
	"fmt"

	"github.com/theirongolddev/paisa/internal/cli"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"insights"},
	Short:   "Ask for advice based on your recent spending",
	Args:    cobra.NoArgs,
	RunE:    runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	info("Analysing your spending...")
	if err := a.recommendations.Generate(cmd.Context()); err != nil {
		return userError(err)
	}
	result := a.recommendations.Result()
	if result == nil {
		return nil
	}

	text := lipgloss.NewStyle().Width(72).PaddingLeft(2)
	num := lipgloss.NewStyle().Bold(true).Foreground(cli.ColorAccent)

	fmt.Println()
	fmt.Println(cli.RenderTitle("INSIGHTS"))
	fmt.Println()
	fmt.Println(text.Render(result.Summary))
	fmt.Println()
	if len(result.Recommendations) == 0 {
		fmt.Println("  " + cli.RenderMuted("No recommendations this time."))
	}
	for i, r := range result.Recommendations {
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top,
			"  "+num.Render(fmt.Sprintf("%d.", i+1)),
			lipgloss.NewStyle().Width(68).PaddingLeft(1).Render(r)))
	}
	fmt.Println()
	return nil
}
