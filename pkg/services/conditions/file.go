package conditions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"
)

const (
	KindFileContains = "FileContains"
	KindFileExists   = "FileExists"
)

// FileContains holds when the file is readable text and the regular
// expression matches anywhere in it.
type FileContains struct {
	File     string `yaml:"file"`
	Contains string `yaml:"contains"`
}

func (FileContains) Kind() string { return KindFileContains }

func (c FileContains) Evaluate(ctx context.Context) bool {
	content, err := os.ReadFile(c.File)
	if err != nil {
		return notMet(ctx, c.Kind(), err)
	}
	if !utf8.Valid(content) {
		return notMet(ctx, c.Kind(), fmt.Errorf("%s is not valid text", c.File))
	}

	re, err := regexp.Compile(c.Contains)
	if err != nil {
		return notMet(ctx, c.Kind(), err)
	}
	return re.Match(content)
}

// FileExists holds when anything (file, directory, device...) lives at Path.
// Symlinks are followed, so a dangling link does not count.
type FileExists struct {
	Path string `yaml:"path"`
}

func (FileExists) Kind() string { return KindFileExists }

func (c FileExists) Evaluate(ctx context.Context) bool {
	if c.Path == "" {
		return notMet(ctx, c.Kind(), errors.New("empty path"))
	}
	if _, err := os.Stat(c.Path); err != nil {
		return notMet(ctx, c.Kind(), err)
	}
	return true
}
