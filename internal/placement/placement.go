// Package placement picks normalized wall coordinates for submitted words.
//
// Coordinates live in [0.1, 0.9] on both axes so words keep a margin from the
// wall's edges, and are rounded to four decimal places before submission.
//
// Two placers are provided:
//   - [Random] draws every point independently.
//   - [Spread] retries draws against a shared [Memory] of earlier points so
//     that words keep a minimum distance from each other.
package placement

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Kind names a placement strategy.
type Kind string

const (
	KindRandom Kind = "random"
	KindSpread Kind = "spread"
)

const (
	// Lower and Upper bound both coordinates.
	Lower = 0.1
	Upper = 0.9

	DefaultMinDistance = 0.08
	DefaultAttempts    = 50
)

// Point is a normalized wall coordinate.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Placement is the outcome of one pick.
type Placement struct {
	Point
	// Exhausted is set when no draw within the attempt budget kept the
	// minimum distance and the point was accepted unconditionally.
	Exhausted bool
}

// Placer picks one position per call. rnd is owned by the caller and must
// not be shared across goroutines without external locking.
type Placer interface {
	Place(rnd *rand.Rand) Placement
}

// New returns the placer registered under kind. memory, minDistance and
// attempts only apply to the spread placer.
func New(kind Kind, memory *Memory, minDistance float64, attempts int) (Placer, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(kind)))) {
	case KindRandom:
		return Random{}, nil
	case KindSpread, "":
		return NewSpread(memory, minDistance, attempts), nil
	default:
		return nil, fmt.Errorf("unsupported placement %q", kind)
	}
}

// Round4 rounds v to four decimal places.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Draw returns one unconstrained point.
func Draw(rnd *rand.Rand) Point {
	return Point{
		X: Round4(Lower + rnd.Float64()*(Upper-Lower)),
		Y: Round4(Lower + rnd.Float64()*(Upper-Lower)),
	}
}

// Random places words independently of each other.
type Random struct{}

func (Random) Place(rnd *rand.Rand) Placement {
	return Placement{Point: Draw(rnd)}
}
