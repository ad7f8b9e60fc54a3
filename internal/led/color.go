package led

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a color triple.
type RGB struct {
	R, G, B uint8
}

// ErrInvalidColor is returned by ParseColor for unparsable literals.
var ErrInvalidColor = fmt.Errorf("led: invalid color")

var namedColors = map[string]RGB{
	"red":     {255, 0, 0},
	"green":   {0, 255, 0},
	"blue":    {0, 0, 255},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
}

// ParseColor resolves "#RRGGBB", "rgb(r,g,b)" or a named color.
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}

	if strings.HasPrefix(strings.ToLower(s), "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		var vals [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			vals[i] = uint8(n)
		}
		return RGB{R: vals[0], G: vals[1], B: vals[2]}, nil
	}

	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}
