package world

// The six-slot player palette and its darker border shades.
var playerPalette = []string{
	"#4FC3F7", "#FF5252", "#69F0AE", "#FFD740", "#E040FB", "#18FFFF",
}

var borderByColor = map[string]string{
	"#4FC3F7": "#0288D1",
	"#FF5252": "#C62828",
	"#69F0AE": "#00C853",
	"#FFD740": "#F9A825",
	"#E040FB": "#AA00FF",
	"#18FFFF": "#00B8D4",
}

// PlayerColor assigns a color pair from the occupant count at join time.
// Pure function; the same count always yields the same pair.
func PlayerColor(occupants int) (color, border string) {
	color = playerPalette[occupants%len(playerPalette)]
	return color, borderByColor[color]
}
