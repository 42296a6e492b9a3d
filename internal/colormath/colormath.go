// Package colormath parses colors, converts them between color spaces and
// serializes them as CSS.
//
// The three operations sit behind the Space interface so the resolver never
// depends on a particular color library. Default covers the CSS Color 4
// spaces; Legacy reproduces the older hex-only formatter.
package colormath

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Mode names a color space
type Mode string

const (
	A98       Mode = "a98"
	Cubehelix Mode = "cubehelix"
	DLab      Mode = "dlab"
	DLCH      Mode = "dlch"
	HSI       Mode = "hsi"
	HSL       Mode = "hsl"
	HSV       Mode = "hsv"
	HWB       Mode = "hwb"
	ITP       Mode = "itp"
	Jab       Mode = "jab"
	JCh       Mode = "jch"
	Lab       Mode = "lab"
	Lab65     Mode = "lab65"
	LCH       Mode = "lch"
	LCH65     Mode = "lch65"
	LCHuv     Mode = "lchuv"
	LRGB      Mode = "lrgb"
	Luv       Mode = "luv"
	OKHSL     Mode = "okhsl"
	OKHSV     Mode = "okhsv"
	OKLab     Mode = "oklab"
	OKLCH     Mode = "oklch"
	P3        Mode = "p3"
	ProPhoto  Mode = "prophoto"
	Rec2020   Mode = "rec2020"
	RGB       Mode = "rgb"
	XYB       Mode = "xyb"
	XYZ50     Mode = "xyz50"
	XYZ65     Mode = "xyz65"
	YIQ       Mode = "yiq"
)

// Modes lists every mode a color expression may name
var Modes = []Mode{
	A98, Cubehelix, DLab, DLCH, HSI, HSL, HSV, HWB, ITP, Jab, JCh, Lab, Lab65,
	LCH, LCH65, LCHuv, LRGB, Luv, OKHSL, OKHSV, OKLab, OKLCH, P3, ProPhoto,
	Rec2020, RGB, XYB, XYZ50, XYZ65, YIQ,
}

// ParseMode reports whether s names a known mode
func ParseMode(s string) (Mode, bool) {
	m := Mode(s)
	return m, lo.Contains(Modes, m)
}

// Color is a color in one mode. Channels are in the mode's native units:
// rgb channels run 0-1, hues are degrees, lab lightness runs 0-100.
type Color struct {
	Mode  Mode
	C     [3]float64
	Alpha float64
}

// WithAlpha returns a copy of c with alpha replaced
func (c Color) WithAlpha(alpha float64) Color {
	c.Alpha = alpha
	return c
}

// Space parses, converts and formats colors
type Space interface {
	// Parse reads a color from CSS text
	Parse(text string) mo.Option[Color]
	// Convert returns c expressed in mode
	Convert(c Color, mode Mode) (Color, error)
	// Format serializes c as CSS
	Format(c Color) (string, error)
}

// Sentinel errors for error type checking
var (
	// ErrUnsupportedMode indicates a space cannot produce or format a mode
	ErrUnsupportedMode = errors.New("unsupported color mode")

	// ErrUnsupportedConversion indicates a space cannot convert between two modes
	ErrUnsupportedConversion = errors.New("unsupported color conversion")
)

// ModeError reports a mode a space does not support
type ModeError struct {
	Mode  Mode
	Space string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("%s colors do not support mode %q", e.Space, e.Mode)
}

func (e *ModeError) Unwrap() error {
	return ErrUnsupportedMode
}

// ConversionError reports a conversion a space cannot perform
type ConversionError struct {
	From Mode
	To   Mode
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

func (e *ConversionError) Unwrap() error {
	return ErrUnsupportedConversion
}

// Serialize converts c to mode and formats the result
func Serialize(s Space, c Color, mode Mode) (string, error) {
	converted, err := s.Convert(c, mode)
	if err != nil {
		return "", err
	}
	return s.Format(converted)
}
