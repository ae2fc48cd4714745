package core

// Color is a foreground color for a screen cell. The platform maps it to a
// terminal style; games only pick from this palette.
type Color uint8

// Palette. The first six bright colors double as tile colors.
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

// TileColors is the tile palette, indexed by tile kind. Kinds past the end
// wrap around.
var TileColors = []Color{
	ColorBrightRed,
	ColorBrightBlue,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorOrange,
	ColorBrightCyan,
	ColorWhite,
}

// TileColor returns the palette color for tile kind k.
func TileColor(k int) Color {
	if k < 0 {
		return ColorGray
	}
	return TileColors[k%len(TileColors)]
}
