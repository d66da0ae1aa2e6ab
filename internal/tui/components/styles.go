// Package components provides reusable UI components and styles.
// Call InitStyles() before use to initialize all style variables.
package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/config/colors"
	"github.com/thenoetrevino/pipeboard/internal/tui/theme"
)

// These are cached to avoid recomputing on every redraw.
var (
	// ColumnStyle defines the appearance of a board column
	ColumnStyle lipgloss.Style

	// DropColumnStyle is a column currently under the dragged card
	DropColumnStyle lipgloss.Style

	// ColumnTitleStyle renders the stage name in the column header
	ColumnTitleStyle lipgloss.Style

	// CardStyle defines the appearance of a card at rest
	CardStyle lipgloss.Style

	// FocusedCardStyle is the card with keyboard focus
	FocusedCardStyle lipgloss.Style

	// DropCardStyle is a card currently under the dragged card
	DropCardStyle lipgloss.Style

	// PlaceholderCardStyle marks the origin slot of the card being dragged
	PlaceholderCardStyle lipgloss.Style

	// DragCardStyle is the floating duplicate that follows the pointer
	DragCardStyle lipgloss.Style

	// TitleStyle defines the appearance of the app header
	TitleStyle lipgloss.Style

	// SubtleStyle is muted helper text
	SubtleStyle lipgloss.Style

	// IndicatorStyle defines the appearance of scroll indicators
	IndicatorStyle lipgloss.Style

	// DetailBoxStyle wraps the item detail overlay
	DetailBoxStyle lipgloss.Style

	// HelpBoxStyle defines the base style for help screen
	HelpBoxStyle lipgloss.Style

	// StatusBarStyle defines the base style for the status bar
	StatusBarStyle lipgloss.Style
)

// InitStyles initializes all styles with the given color scheme
func InitStyles(c colors.ColorScheme) {
	theme.Init(c)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		PaddingLeft(1).
		PaddingRight(1)

	DropColumnStyle = ColumnStyle.
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(theme.DropHighlight))

	ColumnTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColumnTitle))

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.CardBorder)).
		BorderBackground(lipgloss.Color(theme.CardBg)).
		Background(lipgloss.Color(theme.CardBg)).
		Foreground(lipgloss.Color(theme.Normal)).
		PaddingLeft(1)

	FocusedCardStyle = CardStyle.
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(theme.FocusBorder))

	DropCardStyle = CardStyle.
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(theme.DropHighlight))

	PlaceholderCardStyle = CardStyle.
		Border(lipgloss.HiddenBorder()).
		Foreground(lipgloss.Color(theme.PlaceholderText)).
		Faint(true)

	DragCardStyle = CardStyle.
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(theme.DragBorder))

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	IndicatorStyle = SubtleStyle.Italic(true)

	DetailBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2)

	HelpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarText)).
		Background(lipgloss.Color(theme.StatusBarBg))
}

// Box renders content with style so the result is exactly w cells wide and
// at least h cells tall, whether or not the style counts its frame in Width.
func Box(style lipgloss.Style, content string, w, h int) string {
	out := style.Width(w).Height(h).Render(content)
	dw := lipgloss.Width(out) - w
	dh := lipgloss.Height(out) - h
	if dw > 0 || dh > 0 {
		out = style.Width(max(w-max(dw, 0), 1)).Height(max(h-max(dh, 0), 1)).Render(content)
	}
	return out
}
