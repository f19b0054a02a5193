// Package palette generates the CSS hsl() colors attached to submitted words.
package palette

import (
	"fmt"
	"math/rand"
	"strings"
)

// Kind names a color generation strategy.
type Kind string

const (
	KindSimple Kind = "simple"
	KindZones  Kind = "zones"
)

// Simple palette constants.
const (
	SimpleSaturation = 70
	SimpleLightness  = 60
)

// HSL is an integer hue/saturation/lightness triple.
type HSL struct {
	H int
	S int
	L int
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// Generator produces one color per call. Implementations are not safe for
// concurrent use; callers serialize access to rnd.
type Generator interface {
	Color(rnd *rand.Rand) HSL
}

// New returns the generator registered under kind.
func New(kind Kind) (Generator, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case KindSimple:
		return Simple{}, nil
	case KindZones, "":
		return NewZoned(DefaultZones), nil
	default:
		return nil, fmt.Errorf("unsupported palette %q", kind)
	}
}

// Simple draws any hue at fixed saturation and lightness.
type Simple struct{}

func (Simple) Color(rnd *rand.Rand) HSL {
	return HSL{
		H: int(rnd.Float64() * 360),
		S: SimpleSaturation,
		L: SimpleLightness,
	}
}

// Zoned draws colors from a curated set of zones.
type Zoned struct {
	zones []Zone
}

// NewZoned copies zones into a generator. It panics on an empty table.
func NewZoned(zones []Zone) *Zoned {
	if len(zones) == 0 {
		panic("palette: zoned generator needs at least one zone")
	}
	return &Zoned{zones: append([]Zone(nil), zones...)}
}

func (z *Zoned) Color(rnd *rand.Rand) HSL {
	zone := z.zones[rnd.Intn(len(z.zones))]
	return zone.Sample(rnd)
}

// Zones returns a copy of the generator's zone table.
func (z *Zoned) Zones() []Zone {
	return append([]Zone(nil), z.zones...)
}
