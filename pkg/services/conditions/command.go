package conditions

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	KindCommandExitCode = "CommandExitCode"
	KindCommandOutput   = "CommandOutput"
)

// CommandExitCode holds when the command exits with Code (0 when unset)
type CommandExitCode struct {
	Command string `yaml:"command"`
	Code    *int   `yaml:"code,omitempty"`
}

func (CommandExitCode) Kind() string { return KindCommandExitCode }

func (c CommandExitCode) Evaluate(ctx context.Context) bool {
	res, err := run(ctx, c.Command)
	if err != nil {
		return notMet(ctx, c.Kind(), err)
	}
	return res.ExitCode == c.expected()
}

func (c CommandExitCode) expected() int {
	if c.Code == nil {
		return 0
	}
	return *c.Code
}

// CommandOutput holds when the command's standard output is text and the
// regular expression matches anywhere in it. The exit code is ignored.
type CommandOutput struct {
	Command  string `yaml:"command"`
	Contains string `yaml:"contains"`
}

func (CommandOutput) Kind() string { return KindCommandOutput }

func (c CommandOutput) Evaluate(ctx context.Context) bool {
	re, err := regexp.Compile(c.Contains)
	if err != nil {
		return notMet(ctx, c.Kind(), err)
	}
	return outputMatches(ctx, c.Kind(), c.Command, re)
}

func outputMatches(ctx context.Context, kind, command string, re *regexp.Regexp) bool {
	res, err := run(ctx, command)
	if err != nil {
		return notMet(ctx, kind, err)
	}
	if !utf8.Valid(res.Stdout) {
		return notMet(ctx, kind, fmt.Errorf("output of %q is not valid text", command))
	}
	return re.Match(res.Stdout)
}
