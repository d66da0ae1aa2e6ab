package components

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// Cache Glamour renderers by width to avoid expensive re-creation
var (
	rendererCache sync.Map // map[int]*glamour.TermRenderer
)

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderNotes renders markdown notes at the given width, falling back to
// the raw text when glamour fails
func RenderNotes(notes string, width int) string {
	if strings.TrimSpace(notes) == "" {
		return IndicatorStyle.Render("No notes")
	}

	renderer, err := getRenderer(width)
	if err == nil {
		rendered, err := renderer.Render(notes)
		if err == nil {
			return strings.TrimSpace(rendered)
		}
	}
	return notes
}

type DetailProps struct {
	Item       models.Item
	StageTitle string
	Width      int
}

// RenderDetail renders the item detail overlay shown when a card is activated
func RenderDetail(p DetailProps) string {
	inner := max(p.Width-DetailBoxStyle.GetHorizontalFrameSize(), 10)

	header := TitleStyle.Render(p.Item.Title)
	stage := SubtleStyle.Render("Stage: " + p.StageTitle)

	sections := []string{header, stage}
	if summary := FieldSummary(p.Item.Fields); summary != "" {
		sections = append(sections, SubtleStyle.Render(lipgloss.Wrap(summary, inner, " ")))
	}
	sections = append(sections, "", RenderNotes(p.Item.Notes, inner), "", SubtleStyle.Render("esc to close"))

	return DetailBoxStyle.Width(p.Width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
