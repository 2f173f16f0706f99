package core

// Color is a foreground color token for a screen cell. The zero value
// doubles as the "empty" marker for board cells: a placed block always
// carries a non-zero color.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)
