package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorWhite
	ColorGray
	ColorOrange
)

// Semantic colors for court elements.
const (
	ColorPlayer1 = ColorCyan
	ColorPlayer2 = ColorMagenta
	ColorBall    = ColorYellow
	ColorNet     = ColorGray
	ColorWall    = ColorGray
	ColorNotice  = ColorOrange
)

// PlayerColor returns the paddle color for a side.
func PlayerColor(p PlayerID) Color {
	if p == Player2 {
		return ColorPlayer2
	}
	return ColorPlayer1
}
