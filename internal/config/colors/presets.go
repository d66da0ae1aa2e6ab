package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent:     "#874BFD",
		Background: "#1C1C1C",

		ColumnBorder:    "#5F87D7",
		ColumnTitle:     "#D75FD7",
		CardBorder:      "#585858",
		CardBackground:  "#262626",
		FocusBorder:     "#D75FD7",
		DragBorder:      "#FFD700",
		DropHighlight:   "#5FD75F",
		PlaceholderText: "#444444",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:  "#00AFFF",
		InfoBg:  "#00005F",
		ErrorFg: "#FF0000",
		ErrorBg: "#5F0000",

		StatusBarBg:   "#874BFD", // Matches accent
		StatusBarText: "#D0D0D0", // Matches normal text
	}
}

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent:     "#FFFFFF",
		Background: "#121212",

		ColumnBorder:    "#FFFFFF",
		ColumnTitle:     "#FFFFFF",
		CardBorder:      "#585858",
		CardBackground:  "#1C1C1C",
		FocusBorder:     "#FFFFFF",
		DragBorder:      "#FFFFFF",
		DropHighlight:   "#D0D0D0",
		PlaceholderText: "#3A3A3A",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:  "#FFFFFF",
		InfoBg:  "#3A3A3A",
		ErrorFg: "#FFFFFF",
		ErrorBg: "#585858",

		StatusBarBg:   "#3A3A3A",
		StatusBarText: "#FFFFFF",
	}
}

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent:     "#957FB8", // oniViolet
		Background: "#1F1F28", // sumiInk3

		ColumnBorder:    "#54546D", // sumiInk6
		ColumnTitle:     "#7E9CD8", // crystalBlue
		CardBorder:      "#363646", // sumiInk5
		CardBackground:  "#2A2A37", // sumiInk4
		FocusBorder:     "#7AA89F", // waveAqua2
		DragBorder:      "#E6C384", // carpYellow
		DropHighlight:   "#98BB6C", // springGreen
		PlaceholderText: "#54546D",

		Title:  "#7E9CD8",
		Subtle: "#727169", // fujiGray
		Normal: "#DCD7BA", // fujiWhite

		InfoFg:  "#7FB4CA", // springBlue
		InfoBg:  "#223249", // waveBlue1
		ErrorFg: "#FF5D62", // peachRed
		ErrorBg: "#43242B", // winterRed

		StatusBarBg:   "#223249",
		StatusBarText: "#DCD7BA",
	}
}
