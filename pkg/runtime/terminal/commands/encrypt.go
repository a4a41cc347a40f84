package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/kothscore/helios/pkg/services/loader"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type EncryptCmd struct {
	rt *Runtime
}

func NewEncryptCmd(rt *Runtime) *cobra.Command {
	ec := &EncryptCmd{rt: rt}
	return &cobra.Command{
		Use:   "encrypt",
		Short: "Validate the plaintext configuration and write the obfuscated blob",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}
}

func (ec *EncryptCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s := ec.rt.Settings

	if strings.HasPrefix(s.Blob, "s3://") {
		return fmt.Errorf("cannot write blob to %s, encrypt locally and upload the result", s.Blob)
	}

	c, err := ec.rt.codec(ctx)
	if err != nil {
		return err
	}

	plaintext, err := os.ReadFile(s.Config)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg, err := loader.NewLoader(c, ec.rt.Catalog).Parse(plaintext)
	if err != nil {
		return err
	}

	blob, err := c.Encode(plaintext)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.WriteFile(s.Blob, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("config", s.Config).
		Str("blob", s.Blob).
		Int("records", len(cfg.Records)).
		Msg("configuration encrypted")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d records)\n", s.Blob, len(cfg.Records))
	return nil
}
