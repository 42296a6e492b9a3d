package colormath

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NormalizeHex adds a missing '#' and expands three-digit hex to six digits.
// Anything else is returned as is.
func NormalizeHex(s string) string {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

// IsHex reports whether s is a six-digit hex color once normalized
func IsHex(s string) bool {
	return hexPattern.MatchString(NormalizeHex(s))
}

type legacySpace struct{}

// Legacy reads six-digit hex only and writes rgb, hsl, hwb and a placeholder
// oklch in the older fixed-precision syntax: hsl(210.00deg 50.00% 40.00%).
var Legacy Space = legacySpace{}

func (legacySpace) Parse(text string) mo.Option[Color] {
	hex := NormalizeHex(strings.TrimSpace(text))
	if !hexPattern.MatchString(hex) {
		return mo.None[Color]()
	}
	var c Color
	c.Mode = RGB
	c.Alpha = 1
	for i := range c.C {
		n, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return mo.None[Color]()
		}
		c.C[i] = float64(n) / 255
	}
	return mo.Some(c)
}

func (legacySpace) Convert(c Color, mode Mode) (Color, error) {
	if c.Mode == mode {
		return c, nil
	}
	if c.Mode != RGB {
		return Color{}, &ConversionError{From: c.Mode, To: mode}
	}
	r, g, b := c.C[0], c.C[1], c.C[2]
	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))

	out := Color{Mode: mode, Alpha: c.Alpha}
	switch mode {
	case HSL:
		l := (hi + lo) / 2
		s := 0.0
		if d := hi - lo; d > 0 {
			if l > 0.5 {
				s = d / (2 - hi - lo)
			} else {
				s = d / (hi + lo)
			}
		}
		out.C = [3]float64{legacyHue(r, g, b, hi, lo), s, l}
	case HWB:
		out.C = [3]float64{legacyHue(r, g, b, hi, lo), lo, 1 - hi}
	case OKLCH:
		// Rec. 709 luma stands in for lightness; chroma and hue are fixed
		out.C = [3]float64{0.2126*r + 0.7152*g + 0.0722*b, 0.01, 0}
	default:
		return Color{}, &ModeError{Mode: mode, Space: "legacy"}
	}
	return out, nil
}

func legacyHue(r, g, b, hi, lo float64) float64 {
	d := hi - lo
	if d == 0 {
		return 0
	}
	var h float64
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60
}

func (legacySpace) Format(c Color) (string, error) {
	var b strings.Builder
	switch c.Mode {
	case RGB:
		fmt.Fprintf(&b, "rgb(%d %d %d", byte255(c.C[0]), byte255(c.C[1]), byte255(c.C[2]))
	case HSL:
		fmt.Fprintf(&b, "hsl(%.2fdeg %.2f%% %.2f%%", c.C[0], c.C[1]*100, c.C[2]*100)
	case HWB:
		fmt.Fprintf(&b, "hwb(%.2fdeg %.2f%% %.2f%%", c.C[0], c.C[1]*100, c.C[2]*100)
	case OKLCH:
		fmt.Fprintf(&b, "oklch(%.2f %.2f %.2f", c.C[0], c.C[1], c.C[2])
	default:
		return "", &ModeError{Mode: c.Mode, Space: "legacy"}
	}
	writeAlpha(&b, c.Alpha)
	b.WriteByte(')')
	return b.String(), nil
}
