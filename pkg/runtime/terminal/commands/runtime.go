package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/kothscore/helios/pkg/services/codec"
	"github.com/kothscore/helios/pkg/services/conditions"
	"github.com/kothscore/helios/pkg/services/config"
)

// Reporter renders a score report
type Reporter interface {
	Handle(report *domain.Report) error
}

// ReporterFactory builds a reporter writing to w
type ReporterFactory func(w io.Writer) Reporter

// Submitter delivers a report to a remote scoreboard
type Submitter interface {
	Submit(ctx context.Context, url, team string, report *domain.Report) error
}

// Runtime is shared by every command. Settings are filled in by the root
// command before any subcommand runs.
type Runtime struct {
	Settings  *config.Settings
	Catalog   conditions.Catalog
	Reporters map[string]ReporterFactory
	Submitter Submitter
}

func (rt *Runtime) codec(ctx context.Context) (*codec.Codec, error) {
	registry, err := config.NewKeyRegistry(rt.Settings.KeysFile)
	if err != nil {
		return nil, err
	}

	keys, err := registry.GetKeys(ctx, rt.Settings.KeyProfile)
	if err != nil {
		return nil, err
	}

	return codec.New(keys)
}

func (rt *Runtime) reporter(format string, w io.Writer) (Reporter, error) {
	factory, ok := rt.Reporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return factory(w), nil
}
