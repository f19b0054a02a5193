package word_test

import (
	"encoding/json"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/torosent/wordloom/internal/palette"
	"github.com/torosent/wordloom/internal/placement"
	"github.com/torosent/wordloom/internal/vocabulary"
	"github.com/torosent/wordloom/internal/word"
)

var colorPattern = regexp.MustCompile(`^hsl\(\d{1,3}, \d{1,3}%, \d{1,3}%\)$`)

func newGenerator(t *testing.T) *word.Generator {
	t.Helper()
	g, err := word.NewGenerator(99, vocabulary.MustDefault(), placement.NewSpread(nil, 0.08, 50), palette.NewZoned(palette.DefaultZones))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func TestNewGeneratorRequiresParts(t *testing.T) {
	vocab := vocabulary.MustDefault()
	if _, err := word.NewGenerator(1, nil, placement.Random{}, palette.Simple{}); err == nil {
		t.Error("expected error without vocabulary")
	}
	if _, err := word.NewGenerator(1, vocab, nil, palette.Simple{}); err == nil {
		t.Error("expected error without placer")
	}
	if _, err := word.NewGenerator(1, vocab, placement.Random{}, nil); err == nil {
		t.Error("expected error without palette")
	}
}

func TestNextProducesValidSubmissions(t *testing.T) {
	g := newGenerator(t)
	known := map[string]bool{}
	for _, w := range vocabulary.Default {
		known[w] = true
	}

	for i := 0; i < 200; i++ {
		got := g.Next()
		if !known[got.Text] {
			t.Fatalf("unexpected word %q", got.Text)
		}
		if got.X < 0.1 || got.X > 0.9 || got.Y < 0.1 || got.Y > 0.9 {
			t.Fatalf("position out of range: (%v, %v)", got.X, got.Y)
		}
		if !colorPattern.MatchString(got.Color) {
			t.Fatalf("bad color %q", got.Color)
		}
	}
}

func TestSubmissionJSON(t *testing.T) {
	body, err := json.Marshal(word.Submission{Text: "Lien", X: 0.1234, Y: 0.9, Color: "hsl(5, 80%, 60%)"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"text":"Lien","x":0.1234,"y":0.9,"color":"hsl(5, 80%, 60%)"}`
	if string(body) != want {
		t.Fatalf("json = %s, want %s", body, want)
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	a := newGenerator(t)
	b := newGenerator(t)
	for i := 0; i < 20; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("step %d differs: %+v vs %+v", i, x, y)
		}
	}
}

func TestDelayBounds(t *testing.T) {
	g := newGenerator(t)
	for i := 0; i < 1000; i++ {
		d := g.Delay(50*time.Millisecond, 300*time.Millisecond)
		if d < 50*time.Millisecond || d > 300*time.Millisecond {
			t.Fatalf("delay %s outside [50ms, 300ms]", d)
		}
	}
	if d := g.Delay(time.Second, time.Second); d != time.Second {
		t.Fatalf("degenerate range gave %s", d)
	}
}

func TestNextIsSafeForConcurrentUse(t *testing.T) {
	g := newGenerator(t)
	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				_ = g.Next()
				_ = g.Delay(0, time.Millisecond)
			}
		}()
	}
	wg.Wait()
}
