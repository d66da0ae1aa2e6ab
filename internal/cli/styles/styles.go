// Package styles renders items for human-readable CLI output
package styles

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/config/colors"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 60

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Stage:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Notes"

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
)

// Init initializes all CLI styles with the given color scheme
func Init(c colors.ColorScheme) {
	c.ApplyDefaults()

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Accent)).
		Padding(0, 1).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.InfoFg)).
		Background(lipgloss.Color(c.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.ErrorFg)).
		Background(lipgloss.Color(c.ErrorBg)).
		Padding(0, 1)
}

// RenderItem renders one item as a bordered card
func RenderItem(item models.Item, stageTitle string) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(item.Title))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(item.ID))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Stage: ") + ValueStyle.Render(stageTitle))

	keys := make([]string, 0, len(item.Fields))
	for k := range item.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render(k+": ") + ValueStyle.Render(item.Fields[k]))
	}

	if item.Notes != "" {
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(ValueStyle.Render(item.Notes))
	}
	return CardStyle.Render(b.String())
}

// RenderStage renders a stage heading with its item count
func RenderStage(stage models.Column, count int) string {
	return TitleStyle.Render(stage.Title) + SubtitleStyle.Render(fmt.Sprintf(" (%s, %d)", stage.ID, count))
}

// RenderItemLine renders an item as a single list line
func RenderItemLine(item models.Item) string {
	return "  " + ValueStyle.Render(item.Title) + " " + SubtitleStyle.Render("["+item.ID+"]")
}
