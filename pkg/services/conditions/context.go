package conditions

import (
	"context"
	"time"
)

type runnerKey struct{}
type timeoutKey struct{}

// WithRunner overrides the process runner used by command-backed conditions
func WithRunner(ctx context.Context, r Runner) context.Context {
	return context.WithValue(ctx, runnerKey{}, r)
}

func GetRunner(ctx context.Context) Runner {
	if r, ok := ctx.Value(runnerKey{}).(Runner); ok && r != nil {
		return r
	}
	return ExecRunner{}
}

// WithCommandTimeout bounds every spawned command. Zero means no timeout.
func WithCommandTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, timeoutKey{}, d)
}

func getCommandTimeout(ctx context.Context) time.Duration {
	d, _ := ctx.Value(timeoutKey{}).(time.Duration)
	return d
}
