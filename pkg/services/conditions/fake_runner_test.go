package conditions

import (
	"context"
	"strings"
	"sync"
)

type fakeRunner struct {
	mu       sync.Mutex
	results  map[string]Result
	errs     map[string]error
	calls    []string
	deadline bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: make(map[string]Result),
		errs:    make(map[string]error),
	}
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, line)
	if _, ok := ctx.Deadline(); ok {
		f.deadline = true
	}

	if err, ok := f.errs[line]; ok {
		return Result{}, err
	}
	if res, ok := f.results[line]; ok {
		return res, nil
	}
	return Result{}, &notFoundError{name: name}
}

type notFoundError struct{ name string }

func (e *notFoundError) Error() string { return "exec: " + e.name + ": not found" }
