package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/torosent/wordloom/internal/word"
)

// TaskPrinter writes one line per finished task. Lines from concurrent
// workers never interleave.
type TaskPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTaskPrinter(w io.Writer) *TaskPrinter {
	if w == nil {
		w = io.Discard
	}
	return &TaskPrinter{w: w}
}

// Success prints the placed word with its position and color.
func (p *TaskPrinter) Success(idx int, g word.Generated) {
	p.println(FormatSuccess(idx, g))
}

// Failure prints the word and why its submission failed.
func (p *TaskPrinter) Failure(idx int, text string, err error) {
	p.println(FormatFailure(idx, text, err))
}

func (p *TaskPrinter) println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, line)
}

// FormatSuccess renders "✓ [i] 'word' placed at (x, y) color".
func FormatSuccess(idx int, g word.Generated) string {
	line := fmt.Sprintf("✓ [%d] '%s' placed at (%.4f, %.4f) %s", idx, g.Text, g.X, g.Y, g.Color)
	if g.Crowded {
		line += " [crowded]"
	}
	return line
}

// FormatFailure renders "✗ [i] 'word' failed: detail".
func FormatFailure(idx int, text string, err error) string {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	return fmt.Sprintf("✗ [%d] '%s' failed: %s", idx, text, detail)
}
