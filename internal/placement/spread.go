package placement

import (
	"math/rand"
	"sync"
)

// Memory is the append-only list of points placed during one run.
// It is safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	points []Point
}

// NewMemory returns an empty memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the number of remembered points.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.points)
}

// Snapshot returns a copy of the remembered points in placement order.
func (m *Memory) Snapshot() []Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Point(nil), m.points...)
}

// Reset forgets every point. Call it only between runs.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.points = nil
	m.mu.Unlock()
}

// clearOf reports whether p keeps at least minDistance from every point.
// Callers hold m.mu.
func (m *Memory) clearOf(p Point, minDistance float64) bool {
	for _, q := range m.points {
		if p.Distance(q) < minDistance {
			return false
		}
	}
	return true
}

// Spread keeps new words at least MinDistance away from earlier ones, giving
// up after Attempts draws.
type Spread struct {
	memory      *Memory
	minDistance float64
	attempts    int
}

// NewSpread builds a spread placer over memory. Non-positive arguments fall
// back to the package defaults; a nil memory gets a fresh one.
func NewSpread(memory *Memory, minDistance float64, attempts int) *Spread {
	if memory == nil {
		memory = NewMemory()
	}
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Spread{memory: memory, minDistance: minDistance, attempts: attempts}
}

// Memory returns the shared memory the placer appends to.
func (s *Spread) Memory() *Memory {
	return s.memory
}

// Place scans and appends under the memory lock, so two concurrent calls
// never both accept points that are too close to each other.
func (s *Spread) Place(rnd *rand.Rand) Placement {
	s.memory.mu.Lock()
	defer s.memory.mu.Unlock()

	for i := 0; i < s.attempts; i++ {
		p := Draw(rnd)
		if s.memory.clearOf(p, s.minDistance) {
			s.memory.points = append(s.memory.points, p)
			return Placement{Point: p}
		}
	}

	p := Draw(rnd)
	s.memory.points = append(s.memory.points, p)
	return Placement{Point: p, Exhausted: true}
}
