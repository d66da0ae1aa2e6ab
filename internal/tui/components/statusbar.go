package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

type StatusBarProps struct {
	Width    int
	Left     string // e.g. drag state
	Live     string // live update source: "live", "watching", "polling 30s" or ""
	HelpHint string
}

// RenderStatusBar renders a single status line with left and right aligned text
func RenderStatusBar(props StatusBarProps) string {
	left := " " + props.Left
	right := props.HelpHint + " "
	if props.Live != "" {
		right = props.Live + " · " + right
	}

	gap := max(props.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right

	return StatusBarStyle.Width(props.Width).MaxWidth(props.Width).Render(line)
}
