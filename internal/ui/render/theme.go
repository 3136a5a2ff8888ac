package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	UpButtonFg  tcell.Color
	ColumnFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	DirectoryFg tcell.Color
	FileFg      tcell.Color
	MutedFg     tcell.Color
	SearchFg    tcell.Color
	ErrorFg     tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		UpButtonFg:  tcell.Color33,
		ColumnFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		DirectoryFg: tcell.Color33,
		FileFg:      tcell.ColorDefault,
		MutedFg:     tcell.ColorLightSlateGray,
		SearchFg:    tcell.Color44, // cyan, matches the code accent
		ErrorFg:     tcell.ColorRed,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
	}
}
