package palette

import "math/rand"

// Range is a closed interval of degrees or percentages. For hues, Min > Max
// means the range wraps through 0°.
type Range struct {
	Min float64
	Max float64
}

// Zone bounds hue, saturation and lightness of one family of colors.
type Zone struct {
	Name       string
	Hue        Range
	Saturation Range
	Lightness  Range
}

// DefaultZones is the palette shared with the wall's own color picker.
var DefaultZones = []Zone{
	{Name: "ruby red", Hue: Range{350, 10}, Saturation: Range{75, 95}, Lightness: Range{55, 65}},
	{Name: "solar orange", Hue: Range{20, 40}, Saturation: Range{80, 100}, Lightness: Range{60, 70}},
	{Name: "warm gold", Hue: Range{45, 55}, Saturation: Range{85, 100}, Lightness: Range{50, 65}},
	{Name: "emerald green", Hue: Range{130, 160}, Saturation: Range{65, 85}, Lightness: Range{50, 65}},
	{Name: "lagoon cyan", Hue: Range{170, 190}, Saturation: Range{75, 95}, Lightness: Range{55, 70}},
	{Name: "deep blue", Hue: Range{210, 240}, Saturation: Range{70, 90}, Lightness: Range{55, 70}},
	{Name: "royal violet", Hue: Range{260, 280}, Saturation: Range{70, 90}, Lightness: Range{60, 70}},
	{Name: "vivid magenta", Hue: Range{290, 315}, Saturation: Range{75, 95}, Lightness: Range{55, 65}},
	{Name: "powder pink", Hue: Range{325, 345}, Saturation: Range{70, 90}, Lightness: Range{60, 75}},
}

// Wraps reports whether the hue range crosses 0°.
func (z Zone) Wraps() bool {
	return z.Hue.Min > z.Hue.Max
}

// Sample draws a color uniformly inside the zone.
func (z Zone) Sample(rnd *rand.Rand) HSL {
	lo, hi := z.Hue.Min, z.Hue.Max
	if lo > hi {
		hi += 360
	}
	hue := uniform(rnd, lo, hi)
	if hue >= 360 {
		hue -= 360
	}
	return HSL{
		H: int(hue),
		S: int(uniform(rnd, z.Saturation.Min, z.Saturation.Max)),
		L: int(uniform(rnd, z.Lightness.Min, z.Lightness.Max)),
	}
}

// Contains reports whether c lies inside the zone's declared bounds.
func (z Zone) Contains(c HSL) bool {
	h := float64(c.H)
	var hueOK bool
	if z.Wraps() {
		hueOK = (h >= z.Hue.Min && h < 360) || (h >= 0 && h <= z.Hue.Max)
	} else {
		hueOK = h >= z.Hue.Min && h <= z.Hue.Max
	}
	return hueOK && within(float64(c.S), z.Saturation) && within(float64(c.L), z.Lightness)
}

func within(v float64, r Range) bool {
	return v >= r.Min && v <= r.Max
}

func uniform(rnd *rand.Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
