package colormath

import "math"

type matrix [3][3]float64

// Conversion matrices from CSS Color Module Level 4, section 18
var (
	linearRGBToXYZ65 = matrix{
		{0.41239079926595934, 0.357584339383878, 0.1804807884018343},
		{0.21263900587151027, 0.715168678767756, 0.07219231536073371},
		{0.01933081871559182, 0.11919477979462598, 0.9505321522496607},
	}
	// Bradford chromatic adaptation
	d65ToD50 = matrix{
		{1.0479297925449969, 0.022946870601609652, -0.05019226628920524},
		{0.02962780877005599, 0.9904344267538799, -0.017073799063418826},
		{-0.009243040646204504, 0.015055191490298152, 0.7518742814281371},
	}
	xyz65ToP3 = matrix{
		{2.4934969119414263, -0.9313836179191242, -0.40271078445071684},
		{-0.8294889695615749, 1.7626640603183465, 0.023624685841943577},
		{0.03584583024378447, -0.07617238926804182, 0.9568845240076872},
	}
	xyz65ToRec2020 = matrix{
		{1.7166511879712674, -0.35567078377639233, -0.25336628137365974},
		{-0.6666843518324892, 1.6164812366349395, 0.01576854581391113},
		{0.017639857445310783, -0.042770613257808524, 0.9421031212354738},
	}
	xyz65ToA98 = matrix{
		{2.0415879038107465, -0.5650069742788596, -0.34473135077832956},
		{-0.9692436362808795, 1.8759675015077202, 0.04155505740717557},
		{0.013444280632031142, -0.11836239223101837, 1.0151749943912054},
	}
	xyz50ToProPhoto = matrix{
		{1.3457868816471583, -0.25557208737979464, -0.05110186497554526},
		{-0.5446307051249019, 1.5082477428451468, 0.02052744743642139},
		{0, 0, 1.2119675456389452},
	}
	// NTSC coefficients over gamma-encoded sRGB
	rgbToYIQ = matrix{
		{0.29889531, 0.58662247, 0.11448223},
		{0.59597799, -0.2741761, -0.32180189},
		{0.21147017, -0.52261711, 0.31114694},
	}
)

func mul(m matrix, v [3]float64) [3]float64 {
	var out [3]float64
	for i, row := range m {
		out[i] = row[0]*v[0] + row[1]*v[1] + row[2]*v[2]
	}
	return out
}

// encode applies a transfer function to each linear channel
func encode(v [3]float64, gamma func(float64) float64) [3]float64 {
	return [3]float64{gamma(v[0]), gamma(v[1]), gamma(v[2])}
}

func srgbGamma(v float64) float64 {
	a := math.Abs(v)
	if a <= 0.0031308 {
		return 12.92 * v
	}
	return math.Copysign(1.055*math.Pow(a, 1/2.4)-0.055, v)
}

func rec2020Gamma(v float64) float64 {
	const (
		alpha = 1.09929682680944
		beta  = 0.018053968510807
	)
	a := math.Abs(v)
	if a < beta {
		return 4.5 * v
	}
	return math.Copysign(alpha*math.Pow(a, 0.45)-(alpha-1), v)
}

func a98Gamma(v float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), 256.0/563.0), v)
}

func prophotoGamma(v float64) float64 {
	const et = 1.0 / 512
	a := math.Abs(v)
	if a >= et {
		return math.Copysign(math.Pow(a, 1/1.8), v)
	}
	return 16 * v
}
