package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/kothscore/helios/pkg/services/loader"
	"github.com/kothscore/helios/pkg/services/scoring"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ScoreCmd struct {
	output string
	rt     *Runtime
}

func NewScoreCmd(rt *Runtime) *cobra.Command {
	sc := &ScoreCmd{rt: rt}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score this host against the obfuscated configuration",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.output, "output", "o", "text", "Report format (text or json)")

	return cmd
}

func (sc *ScoreCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s := sc.rt.Settings

	reporter, err := sc.rt.reporter(sc.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	c, err := sc.rt.codec(ctx)
	if err != nil {
		return err
	}

	src, err := loader.NewSource(ctx, s.Blob, s.AWSProfile)
	if err != nil {
		return err
	}

	cfg, err := loader.NewLoader(c, sc.rt.Catalog).Load(ctx, src)
	if err != nil {
		return err
	}

	report, err := scoring.NewEngine(scoring.Options{Parallel: s.Parallel}).Score(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to score configuration: %w", err)
	}

	if err := reporter.Handle(report); err != nil {
		return err
	}

	sc.submit(ctx, cfg, report)
	return nil
}

// submit never fails the run; the local report is already out
func (sc *ScoreCmd) submit(ctx context.Context, cfg *domain.Configuration, report *domain.Report) {
	logger := zerolog.Ctx(ctx)

	remote := sc.rt.Settings.Remote
	if remote == "" {
		remote = cfg.Remote
	}
	if remote == "" || sc.rt.Submitter == nil {
		return
	}

	team := strings.TrimSpace(sc.rt.Settings.Team)
	if team == "" {
		logger.Warn().Str("remote", remote).Msg("no team set, report not submitted")
		return
	}

	if err := sc.rt.Submitter.Submit(ctx, remote, team, report); err != nil {
		logger.Error().Err(err).Str("remote", remote).Msg("failed to submit report")
	}
}
