package conditions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result is what a finished process left behind
type Result struct {
	ExitCode int
	Stdout   []byte
}

// Runner spawns a program and waits for it. A non-zero exit is not an error;
// failing to spawn, or dying from a signal, is.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs programs directly, without a shell. Stderr is discarded.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() < 0 {
			return Result{}, fmt.Errorf("%s did not exit normally: %w", name, err)
		}
		return Result{ExitCode: exitErr.ExitCode(), Stdout: stdout.Bytes()}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{ExitCode: 0, Stdout: stdout.Bytes()}, nil
}

// SplitCommand splits a command line on whitespace. There is no quoting:
// an argument cannot contain spaces.
func SplitCommand(command string) (string, []string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil, errors.New("empty command")
	}
	return fields[0], fields[1:], nil
}

func run(ctx context.Context, command string) (Result, error) {
	name, args, err := SplitCommand(command)
	if err != nil {
		return Result{}, err
	}

	if d := getCommandTimeout(ctx); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	return GetRunner(ctx).Run(ctx, name, args...)
}
