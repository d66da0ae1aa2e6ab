package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset,omitempty"`

	// Primary accent color (used for selections, titles, highlights)
	Accent     string `yaml:"accent,omitempty"`
	Background string `yaml:"background,omitempty"`

	// Board colors
	ColumnBorder    string `yaml:"column_border,omitempty"`
	ColumnTitle     string `yaml:"column_title,omitempty"`
	CardBorder      string `yaml:"card_border,omitempty"`
	CardBackground  string `yaml:"card_background,omitempty"`
	FocusBorder     string `yaml:"focus_border,omitempty"`     // Keyboard focus
	DragBorder      string `yaml:"drag_border,omitempty"`      // Floating card while dragging
	DropHighlight   string `yaml:"drop_highlight,omitempty"`   // Target under the dragged card
	PlaceholderText string `yaml:"placeholder_text,omitempty"` // Ghost left at the origin slot

	// Text colors
	Title  string `yaml:"title,omitempty"`
	Subtle string `yaml:"subtle,omitempty"` // Muted/placeholder text
	Normal string `yaml:"normal,omitempty"`

	// Notification colors (foreground/background pairs)
	InfoFg  string `yaml:"info_fg,omitempty"`
	InfoBg  string `yaml:"info_bg,omitempty"`
	ErrorFg string `yaml:"error_fg,omitempty"`
	ErrorBg string `yaml:"error_bg,omitempty"`

	// Status bar
	StatusBarBg   string `yaml:"status_bar_bg,omitempty"`
	StatusBarText string `yaml:"status_bar_text,omitempty"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	c.fill(GetPreset(c.Preset))
}

// MergeFrom overrides values in c with the non-empty values of other.
// A different preset in other resets the base before overriding.
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" && other.Preset != c.Preset {
		*c = *GetPreset(other.Preset)
	}
	override := other
	override.fill(c)
	*c = override
}

// fill copies every empty field from base
func (c *ColorScheme) fill(base *ColorScheme) {
	fields := []struct {
		dst *string
		src string
	}{
		{&c.Preset, base.Preset},
		{&c.Accent, base.Accent},
		{&c.Background, base.Background},
		{&c.ColumnBorder, base.ColumnBorder},
		{&c.ColumnTitle, base.ColumnTitle},
		{&c.CardBorder, base.CardBorder},
		{&c.CardBackground, base.CardBackground},
		{&c.FocusBorder, base.FocusBorder},
		{&c.DragBorder, base.DragBorder},
		{&c.DropHighlight, base.DropHighlight},
		{&c.PlaceholderText, base.PlaceholderText},
		{&c.Title, base.Title},
		{&c.Subtle, base.Subtle},
		{&c.Normal, base.Normal},
		{&c.InfoFg, base.InfoFg},
		{&c.InfoBg, base.InfoBg},
		{&c.ErrorFg, base.ErrorFg},
		{&c.ErrorBg, base.ErrorBg},
		{&c.StatusBarBg, base.StatusBarBg},
		{&c.StatusBarText, base.StatusBarText},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}
