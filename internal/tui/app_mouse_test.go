package tui

import (
	"testing"

	"github.com/theirongolddev/paisa/internal/session"
	"github.com/theirongolddev/paisa/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	// Signed out sessions hide the Admin tab.
	a := App{sess: session.New(nil, nil)}
	visible := components.Tabs[:components.TabAdmin]

	for active := range visible {
		a.activeTab = active
		pos := components.LogoWidth()
		for i, tab := range visible {
			w := components.TabVisualWidth(tab)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1
		}
	}
}

func TestTabAtXOutsideTabs(t *testing.T) {
	a := App{sess: session.New(nil, nil)}
	if got := a.tabAtX(0); got != -1 {
		t.Errorf("click on logo -> %d, want -1", got)
	}
	if got := a.tabAtX(10_000); got != -1 {
		t.Errorf("click past last tab -> %d, want -1", got)
	}
}
