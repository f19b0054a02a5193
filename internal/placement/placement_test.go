package placement_test

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/torosent/wordloom/internal/placement"
)

func assertInBounds(t *testing.T, p placement.Point) {
	t.Helper()
	for _, v := range []float64{p.X, p.Y} {
		if v < placement.Lower || v > placement.Upper {
			t.Fatalf("coordinate %v outside [0.1, 0.9]", v)
		}
		if scaled := v * 1e4; math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			t.Fatalf("coordinate %v has more than 4 decimals", v)
		}
	}
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.123456, 0.1235},
		{0.89999, 0.9},
		{0.1, 0.1},
		{0.45674999, 0.4567},
	}
	for _, tt := range tests {
		if got := placement.Round4(tt.in); got != tt.want {
			t.Errorf("Round4(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRandomPlacerBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	var p placement.Random
	for i := 0; i < 10000; i++ {
		got := p.Place(rnd)
		if got.Exhausted {
			t.Fatal("random placer never exhausts")
		}
		assertInBounds(t, got.Point)
	}
}

func TestSpreadKeepsMinimumDistance(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	mem := placement.NewMemory()
	s := placement.NewSpread(mem, 0.08, 50)

	var kept []placement.Point
	for i := 0; i < 60; i++ {
		got := s.Place(rnd)
		assertInBounds(t, got.Point)
		if got.Exhausted {
			continue
		}
		for _, q := range kept {
			if d := got.Distance(q); d < 0.08 {
				t.Fatalf("points %v and %v only %.4f apart", got.Point, q, d)
			}
		}
		kept = append(kept, got.Point)
	}
	if mem.Len() != 60 {
		t.Fatalf("memory len = %d, want 60", mem.Len())
	}
}

func TestSpreadFallsBackWhenCrowded(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	// A distance wider than the whole square forces exhaustion after the
	// first point.
	s := placement.NewSpread(nil, 2, 5)

	first := s.Place(rnd)
	if first.Exhausted {
		t.Fatal("first point should always fit")
	}
	second := s.Place(rnd)
	if !second.Exhausted {
		t.Fatal("expected exhausted placement")
	}
	assertInBounds(t, second.Point)
	if s.Memory().Len() != 2 {
		t.Fatalf("exhausted point must still be remembered, len=%d", s.Memory().Len())
	}
}

func TestSpreadConcurrentPlacementsStaySeparated(t *testing.T) {
	mem := placement.NewMemory()
	s := placement.NewSpread(mem, 0.08, 50)

	type result struct {
		p placement.Placement
	}
	results := make(chan result, 40)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for i := 0; i < 5; i++ {
				results <- result{p: s.Place(rnd)}
			}
		}(int64(w + 1))
	}
	wg.Wait()
	close(results)

	var kept []placement.Point
	for r := range results {
		if !r.p.Exhausted {
			kept = append(kept, r.p.Point)
		}
	}
	for i := range kept {
		for j := i + 1; j < len(kept); j++ {
			if d := kept[i].Distance(kept[j]); d < 0.08 {
				t.Fatalf("concurrent points %v and %v only %.4f apart", kept[i], kept[j], d)
			}
		}
	}
	if mem.Len() != 40 {
		t.Fatalf("memory len = %d, want 40", mem.Len())
	}
}

func TestMemoryResetAndSnapshot(t *testing.T) {
	mem := placement.NewMemory()
	s := placement.NewSpread(mem, 0.08, 50)
	rnd := rand.New(rand.NewSource(1))
	a := s.Place(rnd)
	b := s.Place(rnd)

	snap := mem.Snapshot()
	if len(snap) != 2 || snap[0] != a.Point || snap[1] != b.Point {
		t.Fatalf("snapshot = %v, want [%v %v]", snap, a.Point, b.Point)
	}
	snap[0] = placement.Point{}
	if mem.Snapshot()[0] != a.Point {
		t.Fatal("snapshot must be a copy")
	}

	mem.Reset()
	if mem.Len() != 0 {
		t.Fatalf("len after reset = %d", mem.Len())
	}
}

func TestNew(t *testing.T) {
	if p, err := placement.New(placement.KindRandom, nil, 0, 0); err != nil {
		t.Fatal(err)
	} else if _, ok := p.(placement.Random); !ok {
		t.Fatalf("got %T, want Random", p)
	}
	if p, err := placement.New("Spread", nil, 0, 0); err != nil {
		t.Fatal(err)
	} else if _, ok := p.(*placement.Spread); !ok {
		t.Fatalf("got %T, want *Spread", p)
	}
	if _, err := placement.New("grid", nil, 0, 0); err == nil {
		t.Fatal("expected error for unknown placement")
	}
}
