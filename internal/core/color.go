package core

// Color identifies a foreground color for a screen cell. The palette is
// fixed and small: bright slots paint the colored tile kinds so they pop
// on dark terminals, the base slots cover HUD text, and the dim entries
// draw board chrome and empty slots.
type Color uint8

const (
	ColorDefault Color = iota

	// Base palette, used for HUD and status text.
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite

	// Bright variants paint tiles: red through magenta for the colored
	// kinds, cyan for rockets, white for snitches and the blast flash.
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite

	// ColorOrange paints the sixth tile kind, present on hard difficulty.
	ColorOrange
	// ColorGray draws the board frame, empty slots and control hints.
	ColorGray
)
