package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/mosaicwall/mosaicwall/config"
)

// ParseBgColor parses a "#RRGGBB" hex string into an opaque color.RGBA,
// falling back to config.DefaultBackgroundColor on any parse failure —
// unset or unparseable bg_color never aborts a render, per spec.md §4.S.
func ParseBgColor(s string) color.RGBA {
	c, err := parseHex(s)
	if err != nil {
		c, _ = parseHex(config.DefaultBackgroundColor)
	}
	return c
}

func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("style: bg color %q is not #RRGGBB", s)
	}
	r, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, nil
}
