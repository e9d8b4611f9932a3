package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/paisa/internal/controller"
	"github.com/theirongolddev/paisa/internal/tui/components"
	"github.com/theirongolddev/paisa/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderInsightsTab(cw int) string {
	t := theme.Active
	recs := a.opts.Recommendations
	result := recs.Result()

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	switch {
	case recs.State() == controller.Loading:
		return components.ContentCard("Insights", a.spinner.View()+muted.Render(" Analysing your spending..."), cw)
	case result == nil && recs.State() == controller.Errored:
		msg, _ := placeholder(controller.Errored, recs.Err(), true, "")
		return components.ContentCard("Insights", msg, cw)
	case result == nil:
		body := muted.Render("Personalised advice based on your last three months.") +
			"\n\n" + hint("[g] generate")
		return components.ContentCard("Insights", body, cw)
	}

	inner := components.CardInnerWidth(cw)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(inner)
	bullet := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(components.FocusCard("Summary", text.Render(result.Summary), cw))
	b.WriteString("\n")

	var list strings.Builder
	for i, r := range result.Recommendations {
		if i > 0 {
			list.WriteString("\n")
		}
		num := bullet.Render(fmt.Sprintf("%d.", i+1))
		list.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, num, " ",
			text.Width(inner-4).Render(r)))
	}
	if len(result.Recommendations) == 0 {
		list.WriteString(muted.Render("No recommendations this time."))
	}
	list.WriteString("\n\n" + hint("[g] regenerate"))
	b.WriteString(components.ContentCard("Recommendations", list.String(), cw))
	return b.String()
}
