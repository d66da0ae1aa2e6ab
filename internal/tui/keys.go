package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/board/sensor"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/tui/components"
)

// keyMap holds the bindings built from the configured key mappings
type keyMap struct {
	PickupDrop key.Binding
	CancelDrag key.Binding
	DragUp     key.Binding
	DragDown   key.Binding
	DragLeft   key.Binding
	DragRight  key.Binding

	PrevColumn key.Binding
	NextColumn key.Binding
	PrevItem   key.Binding
	NextItem   key.Binding

	ViewItem key.Binding
	Refresh  key.Binding
	ShowHelp key.Binding
	Quit     key.Binding
}

// newKeyMap converts configured key strings into bindings
func newKeyMap(km config.KeyMappings) keyMap {
	bind := func(k, desc string) key.Binding {
		keys := []string{k}
		// A literal space in the config means the space bar
		if k == " " {
			keys = []string{"space"}
			k = "space"
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(k, desc))
	}

	quit := bind(km.Quit, "quit")
	quit.SetKeys(append(quit.Keys(), "ctrl+c")...)

	return keyMap{
		PickupDrop: bind(km.PickupDrop, "pick up / drop card"),
		CancelDrag: bind(km.CancelDrag, "cancel drag"),
		DragUp:     bind(km.DragUp, "carry card up"),
		DragDown:   bind(km.DragDown, "carry card down"),
		DragLeft:   bind(km.DragLeft, "carry card left"),
		DragRight:  bind(km.DragRight, "carry card right"),

		PrevColumn: bind(km.PrevColumn, "previous column"),
		NextColumn: bind(km.NextColumn, "next column"),
		PrevItem:   bind(km.PrevItem, "previous card"),
		NextItem:   bind(km.NextItem, "next card"),

		ViewItem: bind(km.ViewItem, "view card"),
		Refresh:  bind(km.Refresh, "refresh"),
		ShowHelp: bind(km.ShowHelp, "help"),
		Quit:     quit,
	}
}

// dragIntent maps a key to a keyboard drag intent. While a card is carried
// the navigation keys steer it as well.
func (k keyMap) dragIntent(msg tea.KeyPressMsg, carrying bool) sensor.Intent {
	switch {
	case key.Matches(msg, k.PickupDrop):
		return sensor.IntentToggle
	case key.Matches(msg, k.CancelDrag):
		return sensor.IntentCancel
	case key.Matches(msg, k.DragUp), carrying && key.Matches(msg, k.PrevItem):
		return sensor.IntentUp
	case key.Matches(msg, k.DragDown), carrying && key.Matches(msg, k.NextItem):
		return sensor.IntentDown
	case key.Matches(msg, k.DragLeft), carrying && key.Matches(msg, k.PrevColumn):
		return sensor.IntentLeft
	case key.Matches(msg, k.DragRight), carrying && key.Matches(msg, k.NextColumn):
		return sensor.IntentRight
	}
	return sensor.IntentNone
}

// helpSections groups the bindings for the help screen
func (k keyMap) helpSections() []components.HelpSection {
	return []components.HelpSection{
		{Title: "drag", Bindings: []key.Binding{k.PickupDrop, k.CancelDrag, k.DragUp, k.DragDown, k.DragLeft, k.DragRight}},
		{Title: "navigation", Bindings: []key.Binding{k.PrevColumn, k.NextColumn, k.PrevItem, k.NextItem}},
		{Title: "other", Bindings: []key.Binding{k.ViewItem, k.Refresh, k.ShowHelp, k.Quit}},
	}
}
