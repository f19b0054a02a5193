package runner

import "context"

type taskIndexKey struct{}

// WithTaskIndex returns a context carrying the 1-based task index.
func WithTaskIndex(ctx context.Context, idx int) context.Context {
	return context.WithValue(ctx, taskIndexKey{}, idx)
}

// TaskIndex returns the task index stored in ctx, or 0 outside a run.
func TaskIndex(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	idx, _ := ctx.Value(taskIndexKey{}).(int)
	return idx
}
