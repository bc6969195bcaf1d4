package core

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Color represents a foreground color for a screen cell.
// Front ends map each value to an ANSI 256-color code.
type Color uint8

// Palette available to objects and HUD elements.
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

// colorNames are the config spellings, indexed by Color.
var colorNames = [...]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright-red",
	ColorBrightGreen:   "bright-green",
	ColorBrightYellow:  "bright-yellow",
	ColorBrightBlue:    "bright-blue",
	ColorBrightMagenta: "bright-magenta",
	ColorBrightCyan:    "bright-cyan",
	ColorBrightWhite:   "bright-white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
}

// ParseColor looks up a color by its config name. The empty string is the
// default color.
func ParseColor(name string) (Color, bool) {
	if name == "" {
		return ColorDefault, true
	}
	for c, n := range colorNames {
		if n == name {
			return Color(c), true
		}
	}
	return ColorDefault, false
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// UnmarshalYAML reads a color name such as "bright-red".
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, ok := ParseColor(name)
	if !ok {
		return fmt.Errorf("line %d: unknown color %q", value.Line, name)
	}
	*c = parsed
	return nil
}

// MarshalYAML writes the color name.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}
