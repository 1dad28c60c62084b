package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work identified by Key.
type Task[T any] struct {
	Key string
	Run func(ctx context.Context) (T, error)
}

// Failures maps task keys to the error each task returned.
type Failures map[string]error

// Error lists every failure ordered by key.
func (f Failures) Error() string {
	keys := f.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, f[k])
	}
	return strings.Join(parts, "; ")
}

// Keys returns the failed keys in sorted order.
func (f Failures) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Unwrap returns the failures in key order, so errors.Is and errors.As see
// every task error.
func (f Failures) Unwrap() []error {
	keys := f.Keys()
	errs := make([]error, len(keys))
	for i, k := range keys {
		errs[i] = f[k]
	}
	return errs
}

// Err returns f as an error, or nil when nothing failed.
func (f Failures) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// Run executes tasks with at most limit running at once (limit <= 0 means no
// bound) and waits for all of them. A failing task does not cancel the
// others. Results of successful tasks are returned by key; failures, including
// recovered panics, are returned by key as well. Tasks that have not started
// when ctx is cancelled fail with ctx.Err().
func Run[T any](ctx context.Context, limit int, tasks []Task[T]) (map[string]T, Failures) {
	var (
		mu       sync.Mutex
		results  = make(map[string]T, len(tasks))
		failures = make(Failures)
	)

	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, task := range tasks {
		g.Go(func() error {
			value, err := runOne(ctx, task)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[task.Key] = err
				return nil
			}
			results[task.Key] = value
			return nil
		})
	}
	_ = g.Wait()

	return results, failures
}

func runOne[T any](ctx context.Context, task Task[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return value, err
	}
	return task.Run(ctx)
}
