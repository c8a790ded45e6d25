package svgdoc

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errBadColor = errors.New("invalid color")

// ParseColor parses an SVG paint value: #rgb, #rrggbb, rgb(r,g,b),
// any SVG 1.1 color keyword, "none" or "transparent".
// "none" and "transparent" map to the zero (fully transparent) color.
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return color.NRGBA{}, fmt.Errorf("%w: empty value", errBadColor)
	case "none", "transparent":
		return color.NRGBA{}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: cn.R, G: cn.G, B: cn.B, A: cn.A}, nil
	}
	if strings.HasPrefix(v, "#") {
		r, g, b, err := parseHex(v[1:])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w %q: %v", errBadColor, s, err)
		}
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}
	if inner, ok := strings.CutPrefix(v, "rgb("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return color.NRGBA{}, fmt.Errorf("%w %q: missing )", errBadColor, s)
		}
		vals := strings.Split(inner, ",")
		if len(vals) != 3 {
			return color.NRGBA{}, fmt.Errorf("%w %q: expected 3 components", errBadColor, s)
		}
		var c [3]uint8
		for i := range c {
			n, err := parseColorValue(vals[i])
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("%w %q: %v", errBadColor, s, err)
			}
			c[i] = n
		}
		return color.NRGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w %q", errBadColor, s)
}

// parseHex reads rgb or rrggbb; 3 digit forms duplicate each digit.
func parseHex(h string) (r, g, b uint8, err error) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return 0, 0, 0, fmt.Errorf("bad hex length %d", len(h))
	}
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, h[0:2]},
		{&g, h[2:4]},
		{&b, h[4:6]},
	} {
		t, err := strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return 0, 0, 0, err
		}
		*v.c = uint8(t)
	}
	return r, g, b, nil
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if p, ok := strings.CutSuffix(v, "%"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(n * 0xff / 100), nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return clampByte(n), nil
}

func clampByte(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}

// HexColor formats c as #rrggbb, dropping alpha.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
