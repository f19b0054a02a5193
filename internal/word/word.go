// Package word builds the synthetic word records sent to the wall.
package word

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/torosent/wordloom/internal/palette"
	"github.com/torosent/wordloom/internal/placement"
	"github.com/torosent/wordloom/internal/vocabulary"
)

// Submission is the body of one POST to the words endpoint.
type Submission struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// Generated pairs a submission with how its position was chosen.
type Generated struct {
	Submission
	// Crowded is set when the spread placer ran out of attempts.
	Crowded bool
}

// Generator composes vocabulary, placement and palette behind one locked
// random source. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	vocab   *vocabulary.Vocabulary
	placer  placement.Placer
	palette palette.Generator
}

// NewGenerator wires the three pickers. A zero seed seeds from the clock.
func NewGenerator(seed int64, vocab *vocabulary.Vocabulary, placer placement.Placer, colors palette.Generator) (*Generator, error) {
	if vocab == nil {
		return nil, errors.New("vocabulary is required")
	}
	if placer == nil {
		return nil, errors.New("placer is required")
	}
	if colors == nil {
		return nil, errors.New("palette is required")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rnd:     rand.New(rand.NewSource(seed)),
		vocab:   vocab,
		placer:  placer,
		palette: colors,
	}, nil
}

// Next returns a fresh submission.
func (g *Generator) Next() Generated {
	g.mu.Lock()
	defer g.mu.Unlock()

	text := g.vocab.Pick(g.rnd)
	pos := g.placer.Place(g.rnd)
	color := g.palette.Color(g.rnd)

	return Generated{
		Submission: Submission{
			Text:  text,
			X:     pos.X,
			Y:     pos.Y,
			Color: color.String(),
		},
		Crowded: pos.Exhausted,
	}
}

// Delay draws a think time uniformly from [min, max].
func (g *Generator) Delay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return min + time.Duration(g.rnd.Int63n(int64(max-min)+1))
}
