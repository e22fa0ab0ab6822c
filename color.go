package termpic

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque background color
type RGB struct {
	R, G, B uint8
}

// Background presets
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Gray  = RGB{32, 32, 32}
)

// ParseRGB parses a background color given by name (black, white, gray) or
// as a hex triplet such as "#202020".
func ParseRGB(s string) (RGB, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "black":
		return Black, nil
	case "white":
		return White, nil
	case "gray", "grey":
		return Gray, nil
	}
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return RGB{}, fmt.Errorf("invalid background color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// transparent returns c as a fully transparent pixel. It stands in for the
// missing row under the last row of an odd-height image.
func (c RGB) transparent() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0}
}
