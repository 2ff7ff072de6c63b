package core

// Color is a semantic foreground color for a screen cell.
// The platform layer decides the concrete terminal palette.
type Color uint8

// Semantic colors used by the pinball renderer.
const (
	ColorDefault Color = iota
	ColorWall
	ColorBall
	ColorBumper
	ColorBumped
	ColorPin
	ColorFlipper
	ColorGate
	ColorShield
	ColorScore
	ColorMoney
	ColorText
	ColorDim
	ColorWarn
	ColorTitle
	ColorRare
	ColorLegendary
)

// ParseColor maps a color name used in configuration to a Color.
// Unknown names map to ColorDefault.
func ParseColor(name string) Color {
	switch name {
	case "wall":
		return ColorWall
	case "ball":
		return ColorBall
	case "bumper":
		return ColorBumper
	case "bumped":
		return ColorBumped
	case "pin":
		return ColorPin
	case "flipper":
		return ColorFlipper
	case "gate":
		return ColorGate
	case "shield":
		return ColorShield
	case "score", "green":
		return ColorScore
	case "money", "yellow":
		return ColorMoney
	case "text", "white":
		return ColorText
	case "dim", "gray":
		return ColorDim
	case "warn", "red":
		return ColorWarn
	case "title":
		return ColorTitle
	case "rare", "blue":
		return ColorRare
	case "legendary", "purple":
		return ColorLegendary
	default:
		return ColorDefault
	}
}
