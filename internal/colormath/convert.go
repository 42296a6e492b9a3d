package colormath

import (
	"math"
	"strings"

	"bennypowers.dev/csscomposer/internal/collections"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
	"github.com/samber/mo"
)

const (
	// achromatic is the chroma below which a hue is undefined
	achromatic = 1e-4
	// neutralChroma is the sRGB channel spread below which a color is gray
	neutralChroma = 1e-6
)

// White points from the CSS Color 4 chromaticities, matching the matrices
var (
	whiteD50 = [3]float64{0.3457 / 0.3585, 1, (1 - 0.3457 - 0.3585) / 0.3585}
	whiteD65 = [3]float64{0.3127 / 0.3290, 1, (1 - 0.3127 - 0.3290) / 0.3290}
)

var (
	// opponentModes carry two chroma axes after lightness
	opponentModes = collections.NewSet(Lab, Lab65, Luv, OKLab, YIQ)
	// polarModes carry chroma then hue after lightness
	polarModes = collections.NewSet(LCH, LCH65, LCHuv, OKLCH)
)

type defaultSpace struct{}

// Default parses any CSS color csscolorparser understands and converts
// through go-colorful and the CSS Color 4 matrices.
// cubehelix, dlab, dlch, itp, jab, jch, okhsl, okhsv and xyb are recognized
// but unsupported.
var Default Space = defaultSpace{}

func (defaultSpace) Parse(text string) mo.Option[Color] {
	text = strings.TrimSpace(text)
	if text == "" {
		return mo.None[Color]()
	}
	parsed, err := csscolorparser.Parse(text)
	if err != nil {
		return mo.None[Color]()
	}
	return mo.Some(Color{
		Mode:  RGB,
		C:     [3]float64{parsed.R, parsed.G, parsed.B},
		Alpha: parsed.A,
	})
}

func (defaultSpace) Convert(c Color, mode Mode) (Color, error) {
	if c.Mode == mode {
		return c, nil
	}
	if c.Mode != RGB {
		return Color{}, &ConversionError{From: c.Mode, To: mode}
	}
	to, ok := fromRGB[mode]
	if !ok {
		return Color{}, &ModeError{Mode: mode, Space: "default"}
	}
	rgb := colorful.Color{R: c.C[0], G: c.C[1], B: c.C[2]}
	channels := to(rgb)
	if rgbChroma(rgb) < neutralChroma {
		channels = neutral(mode, channels)
	}
	return Color{Mode: mode, C: channels, Alpha: c.Alpha}, nil
}

// neutral clears the rounding noise a gray picks up on its way through XYZ
func neutral(mode Mode, c [3]float64) [3]float64 {
	switch {
	case opponentModes.Has(mode):
		c[1], c[2] = 0, 0
	case polarModes.Has(mode):
		c[1], c[2] = 0, math.NaN()
	}
	return c
}

func (defaultSpace) Format(c Color) (string, error) {
	if _, ok := fromRGB[c.Mode]; !ok && c.Mode != RGB {
		return "", &ModeError{Mode: c.Mode, Space: "default"}
	}
	return format(c), nil
}

// fromRGB holds a conversion from sRGB for every supported target
var fromRGB = map[Mode]func(colorful.Color) [3]float64{
	LRGB: func(c colorful.Color) [3]float64 {
		r, g, b := c.LinearRgb()
		return [3]float64{r, g, b}
	},
	HSL: func(c colorful.Color) [3]float64 {
		h, s, l := c.Hsl()
		return [3]float64{hue(h, rgbChroma(c)), s, l}
	},
	HSV: func(c colorful.Color) [3]float64 {
		h, s, v := c.Hsv()
		return [3]float64{hue(h, rgbChroma(c)), s, v}
	},
	HWB: func(c colorful.Color) [3]float64 {
		h, s, v := c.Hsv()
		return [3]float64{hue(h, rgbChroma(c)), (1 - s) * v, 1 - v}
	},
	HSI: toHSI,
	XYZ65: func(c colorful.Color) [3]float64 {
		return xyz65(c)
	},
	XYZ50: func(c colorful.Color) [3]float64 {
		return xyz50(c)
	},
	Lab: func(c colorful.Color) [3]float64 {
		x := xyz50(c)
		l, a, b := colorful.XyzToLabWhiteRef(x[0], x[1], x[2], whiteD50)
		return [3]float64{l * 100, a * 100, b * 100}
	},
	Lab65: func(c colorful.Color) [3]float64 {
		x := xyz65(c)
		l, a, b := colorful.XyzToLabWhiteRef(x[0], x[1], x[2], whiteD65)
		return [3]float64{l * 100, a * 100, b * 100}
	},
	LCH: func(c colorful.Color) [3]float64 {
		x := xyz50(c)
		return labToLCH(colorful.XyzToLabWhiteRef(x[0], x[1], x[2], whiteD50))
	},
	LCH65: func(c colorful.Color) [3]float64 {
		x := xyz65(c)
		return labToLCH(colorful.XyzToLabWhiteRef(x[0], x[1], x[2], whiteD65))
	},
	Luv: func(c colorful.Color) [3]float64 {
		x := xyz65(c)
		l, u, v := colorful.XyzToLuvWhiteRef(x[0], x[1], x[2], whiteD65)
		return [3]float64{l * 100, u * 100, v * 100}
	},
	LCHuv: func(c colorful.Color) [3]float64 {
		x := xyz65(c)
		l, ch, h := colorful.LuvToLuvLCh(colorful.XyzToLuvWhiteRef(x[0], x[1], x[2], whiteD65))
		return [3]float64{l * 100, ch * 100, hue(h, ch*100)}
	},
	OKLab: func(c colorful.Color) [3]float64 {
		l, a, b := c.OkLab()
		return [3]float64{l, a, b}
	},
	OKLCH: func(c colorful.Color) [3]float64 {
		l, ch, h := c.OkLch()
		return [3]float64{l, ch, hue(h, ch)}
	},
	P3: func(c colorful.Color) [3]float64 {
		return encode(mul(xyz65ToP3, xyz65(c)), srgbGamma)
	},
	Rec2020: func(c colorful.Color) [3]float64 {
		return encode(mul(xyz65ToRec2020, xyz65(c)), rec2020Gamma)
	},
	A98: func(c colorful.Color) [3]float64 {
		return encode(mul(xyz65ToA98, xyz65(c)), a98Gamma)
	},
	ProPhoto: func(c colorful.Color) [3]float64 {
		return encode(mul(xyz50ToProPhoto, xyz50(c)), prophotoGamma)
	},
	YIQ: func(c colorful.Color) [3]float64 {
		return mul(rgbToYIQ, [3]float64{c.R, c.G, c.B})
	},
}

func xyz65(c colorful.Color) [3]float64 {
	r, g, b := c.LinearRgb()
	return mul(linearRGBToXYZ65, [3]float64{r, g, b})
}

func xyz50(c colorful.Color) [3]float64 {
	return mul(d65ToD50, xyz65(c))
}

// labToLCH scales go-colorful's unit lab into CSS lch
func labToLCH(l, a, b float64) [3]float64 {
	h, ch, _ := colorful.LabToHcl(l, a, b)
	return [3]float64{l * 100, ch * 100, hue(h, ch*100)}
}

func toHSI(c colorful.Color) [3]float64 {
	h, _, _ := c.Hsl()
	i := (c.R + c.G + c.B) / 3
	s := 0.0
	if i > 0 {
		s = 1 - math.Min(c.R, math.Min(c.G, c.B))/i
	}
	return [3]float64{hue(h, rgbChroma(c)), s, i}
}

func rgbChroma(c colorful.Color) float64 {
	return math.Max(c.R, math.Max(c.G, c.B)) - math.Min(c.R, math.Min(c.G, c.B))
}

// hue returns NaN for achromatic colors, which format as "none"
func hue(h, chroma float64) float64 {
	if chroma < achromatic {
		return math.NaN()
	}
	return math.Mod(h+360, 360)
}
