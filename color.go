package dreamtable

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// Color is an 8-bit straight-alpha RGBA color. It implements color.Color so
// it can be handed to image and drawing APIs directly.
type Color struct {
	R, G, B, A uint8
}

// RGBA returns a Color from its four 8-bit channels.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

var (
	ColorTransparent = Color{}
	ColorWhite       = Color{255, 255, 255, 255}
	ColorBlack       = Color{0, 0, 0, 255}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// ColorOf converts any color.Color to a straight-alpha Color.
func ColorOf(c color.Color) Color {
	if c == nil {
		return ColorTransparent
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// String renders the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses #rrggbb or #rrggbbaa (the leading # is optional).
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", text)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("color %q: %w", text, err)
	}
	c.R, c.G, c.B, c.A = b[0], b[1], b[2], 255
	if len(b) == 4 {
		c.A = b[3]
	}
	return nil
}
