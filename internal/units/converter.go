package units

import (
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/csscomposer/internal/scan"
	"github.com/iancoleman/strcase"
)

// Base is the number of pixels in one relative unit
const Base = 16

const (
	// Rem is the root-relative length unit
	Rem = "rem"
	// Em is the element-relative length unit
	Em = "em"
)

// DefaultScaleProperty is the custom property consulted by scale() without a factor
const DefaultScaleProperty = "--scale"

// FactorSuffix is appended to symbolic scale factor names
const FactorSuffix = "-scale"

var (
	// unsafePattern matches text that is already a relative expression, or an
	// argument inside a function whose arguments must never be rewritten
	unsafePattern = regexp.MustCompile(`^(?:calc|clamp)\(|(?:^|[^\w-])(?:rgba?|hsla?|hwb|lab|lch|oklab|oklch|color|color-mix|var|env|min|max|url|(?:repeating-)?(?:linear|radial|conic)-gradient)\(`)

	numberPattern    = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	dimensionPattern = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)([a-zA-Z]+)$`)
	nonAlnumPattern  = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// Converter turns pixel lengths into relative lengths.
// The zero value is not useful; build one with NewConverter.
type Converter struct {
	// Unit is the target unit suffix
	Unit string
	// Scaling wraps every converted length in calc(<length> * <Factor>)
	Scaling bool
	// Transform converts unitless numbers, and rewrites "0" as "0<unit>".
	// Without it only px-suffixed text is converted.
	Transform bool
	// Factor is the multiplier expression used when Scaling is set
	Factor string
}

// NewConverter returns a transforming, non-scaling converter for unit
func NewConverter(unit string) Converter {
	return Converter{
		Unit:      unit,
		Transform: true,
		Factor:    DefaultFactor(DefaultScaleProperty),
	}
}

// DefaultFactor is the scaling expression read from property, defaulting to 1
func DefaultFactor(property string) string {
	return "var(" + property + ", 1)"
}

// WithScaling returns a copy of c that wraps results with factor
func (c Converter) WithScaling(factor string) Converter {
	c.Scaling = true
	c.Factor = factor
	return c
}

// Number converts a pixel count
func (c Converter) Number(n float64) string {
	if n == 0 {
		return "0" + c.Unit
	}
	return c.scale(formatNumber(n/Base) + c.Unit)
}

// Convert converts a textual length, a list of lengths, or returns text
// unchanged when it is not a length it understands
func (c Converter) Convert(v string) string {
	v = strings.TrimSpace(v)

	if v == "0" && c.Transform {
		return "0" + c.Unit
	}

	if unsafePattern.MatchString(v) {
		return v
	}

	if delim, ok := delimiter(v); ok {
		parts := scan.Split(v, delim)
		for i, part := range parts {
			parts[i] = c.Convert(part)
		}
		return strings.Join(parts, string(delim))
	}

	if m := dimensionPattern.FindStringSubmatch(v); m != nil && m[2] == c.Unit {
		return c.scale(v)
	}

	num := strings.TrimSuffix(v, "px")
	if num == v && !c.Transform {
		return v
	}
	if !numberPattern.MatchString(num) {
		return v
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return v
	}
	return c.Number(n)
}

func (c Converter) scale(length string) string {
	if !c.Scaling {
		return length
	}
	return "calc(" + length + " * " + c.Factor + ")"
}

// delimiter picks the top-level list separator; commas win over spaces
func delimiter(v string) (byte, bool) {
	switch {
	case scan.Contains(v, ','):
		return ',', true
	case scan.Contains(v, ' '):
		return ' ', true
	}
	return 0, false
}

// FactorProperty derives the custom property for a symbolic scale factor:
// "brandFactor" and "brand factor" both become "--brand-factor-scale".
// Returns "" when name has no alphanumeric characters.
func FactorProperty(name string) string {
	folded := strings.Trim(nonAlnumPattern.ReplaceAllString(name, "-"), "-")
	if folded == "" {
		return ""
	}
	return "--" + strcase.ToKebab(folded) + FactorSuffix
}

// formatNumber prints the shortest decimal that round-trips n
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
