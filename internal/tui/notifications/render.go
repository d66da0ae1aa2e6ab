package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// RenderInline renders a compact single-line notification for the header,
// truncated to maxWidth cells
func RenderInline(n Notification, maxWidth int) string {
	style := n.Severity.style()

	content := style.icon + " " + n.Message
	if maxWidth > 2 {
		content = ansi.Truncate(content, maxWidth-2, "…")
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(content)
}
