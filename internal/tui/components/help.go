package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
)

// HelpSection is a titled group of key bindings
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// RenderHelp renders the keyboard shortcuts screen from the live bindings
func RenderHelp(sections []HelpSection) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("pipeboard - keyboard shortcuts"))
	b.WriteString("\n")

	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(ColumnTitleStyle.Render(strings.ToUpper(s.Title)))
		b.WriteString("\n")
		for _, binding := range s.Bindings {
			if !binding.Enabled() {
				continue
			}
			h := binding.Help()
			fmt.Fprintf(&b, "  %-7s %s\n", h.Key, h.Desc)
		}
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("Drag cards with the mouse. Press any key to close."))
	return HelpBoxStyle.Render(b.String())
}
