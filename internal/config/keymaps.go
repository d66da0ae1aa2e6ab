package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Drag and drop
	PickupDrop string `yaml:"pickup_drop"` // Pick up the focused card, or drop the carried one
	CancelDrag string `yaml:"cancel_drag"`
	DragUp     string `yaml:"drag_up"`
	DragDown   string `yaml:"drag_down"`
	DragLeft   string `yaml:"drag_left"`
	DragRight  string `yaml:"drag_right"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevItem   string `yaml:"prev_item"`
	NextItem   string `yaml:"next_item"`

	// Other
	ViewItem string `yaml:"view_item"`
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PickupDrop: "space",
		CancelDrag: "esc",
		DragUp:     "K",
		DragDown:   "J",
		DragLeft:   "H",
		DragRight:  "L",

		PrevColumn: "h",
		NextColumn: "l",
		PrevItem:   "k",
		NextItem:   "j",

		ViewItem: "enter",
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	for _, f := range []struct {
		dst *string
		def string
	}{
		{&k.PickupDrop, defaults.PickupDrop},
		{&k.CancelDrag, defaults.CancelDrag},
		{&k.DragUp, defaults.DragUp},
		{&k.DragDown, defaults.DragDown},
		{&k.DragLeft, defaults.DragLeft},
		{&k.DragRight, defaults.DragRight},
		{&k.PrevColumn, defaults.PrevColumn},
		{&k.NextColumn, defaults.NextColumn},
		{&k.PrevItem, defaults.PrevItem},
		{&k.NextItem, defaults.NextItem},
		{&k.ViewItem, defaults.ViewItem},
		{&k.Refresh, defaults.Refresh},
		{&k.ShowHelp, defaults.ShowHelp},
		{&k.Quit, defaults.Quit},
	} {
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
}
