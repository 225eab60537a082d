package core

// Color identifies the foreground color of a screen cell. The TUI layer maps
// each value to a terminal style; game code never deals with ANSI codes.
type Color uint8

// Palette for game elements: team rosters, brick rows, HUD accents.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
