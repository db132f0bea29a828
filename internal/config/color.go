package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// None selects a transparent background.
const None = "none"

// ParseColor accepts "#rrggbb", "r,g,b" or "none". For "none" and the empty
// string it returns nil.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, None) {
		return nil, nil
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("color %q: want #rrggbb, r,g,b or none", s)
	}

	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("color %q: component %d: %w", s, i+1, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

func parseHex(s string) (color.Color, error) {
	if len(s) != 7 {
		return nil, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
