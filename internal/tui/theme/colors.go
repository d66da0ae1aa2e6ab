package theme

import "github.com/thenoetrevino/pipeboard/internal/config/colors"

// Colors holds the current theme colors, initialized by Init
var (
	Accent          string
	Background      string
	ColumnBorder    string
	ColumnTitle     string
	CardBorder      string
	CardBg          string
	FocusBorder     string
	DragBorder      string
	DropHighlight   string
	PlaceholderText string
	Title           string
	Subtle          string
	Normal          string
	InfoFg          string
	InfoBg          string
	ErrorFg         string
	ErrorBg         string
	StatusBarBg     string
	StatusBarText   string
)

// Init initializes the theme colors from the given color scheme
func Init(c colors.ColorScheme) {
	c.ApplyDefaults()

	Accent = c.Accent
	Background = c.Background
	ColumnBorder = c.ColumnBorder
	ColumnTitle = c.ColumnTitle
	CardBorder = c.CardBorder
	CardBg = c.CardBackground
	FocusBorder = c.FocusBorder
	DragBorder = c.DragBorder
	DropHighlight = c.DropHighlight
	PlaceholderText = c.PlaceholderText
	Title = c.Title
	Subtle = c.Subtle
	Normal = c.Normal
	InfoFg = c.InfoFg
	InfoBg = c.InfoBg
	ErrorFg = c.ErrorFg
	ErrorBg = c.ErrorBg
	StatusBarBg = c.StatusBarBg
	StatusBarText = c.StatusBarText
}
