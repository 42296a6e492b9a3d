package colormath

import (
	"math"
	"strconv"
	"strings"
)

// notation describes how one mode is written in CSS
type notation struct {
	// open is the text up to the first channel
	open string
	// scale multiplies each stored channel before printing
	scale [3]float64
	// unit follows each printed channel
	unit [3]string
}

var (
	unitScale = [3]float64{1, 1, 1}
	noUnits   = [3]string{}
)

var notations = map[Mode]notation{
	HSL:   {"hsl(", [3]float64{1, 100, 100}, [3]string{"", "%", "%"}},
	HWB:   {"hwb(", [3]float64{1, 100, 100}, [3]string{"", "%", "%"}},
	Lab:   {"lab(", unitScale, noUnits},
	LCH:   {"lch(", unitScale, noUnits},
	OKLab: {"oklab(", unitScale, noUnits},
	OKLCH: {"oklch(", unitScale, noUnits},

	P3:       {"color(display-p3 ", unitScale, noUnits},
	Rec2020:  {"color(rec2020 ", unitScale, noUnits},
	A98:      {"color(a98-rgb ", unitScale, noUnits},
	ProPhoto: {"color(prophoto-rgb ", unitScale, noUnits},
	LRGB:     {"color(srgb-linear ", unitScale, noUnits},
	XYZ50:    {"color(xyz-d50 ", unitScale, noUnits},
	XYZ65:    {"color(xyz-d65 ", unitScale, noUnits},
}

// notationOf falls back to a custom color space for modes with no CSS syntax
func notationOf(m Mode) notation {
	if n, ok := notations[m]; ok {
		return n
	}
	return notation{"color(--" + string(m) + " ", unitScale, noUnits}
}

func format(c Color) string {
	var b strings.Builder
	if c.Mode == RGB {
		b.WriteString("rgb(")
		for i, ch := range c.C {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(byte255(ch)))
		}
	} else {
		n := notationOf(c.Mode)
		b.WriteString(n.open)
		for i, ch := range c.C {
			if i > 0 {
				b.WriteByte(' ')
			}
			if math.IsNaN(ch) {
				b.WriteString("none")
				continue
			}
			b.WriteString(FormatNumber(ch * n.scale[i]))
			b.WriteString(n.unit[i])
		}
	}
	writeAlpha(&b, c.Alpha)
	b.WriteByte(')')
	return b.String()
}

func writeAlpha(b *strings.Builder, alpha float64) {
	if alpha < 1 {
		b.WriteString(" / ")
		b.WriteString(FormatNumber(alpha))
	}
}

// FormatNumber prints v rounded to four decimals, without trailing zeros
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "none"
	}
	s := strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

func byte255(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
