package commands

import (
	"github.com/kothscore/helios/pkg/services/loader"
	"github.com/spf13/cobra"
)

type DecryptCmd struct {
	rt *Runtime
}

func NewDecryptCmd(rt *Runtime) *cobra.Command {
	dc := &DecryptCmd{rt: rt}
	return &cobra.Command{
		Use:   "decrypt",
		Short: "Print the plaintext of the obfuscated blob",
		Args:  cobra.NoArgs,
		RunE:  dc.run,
	}
}

func (dc *DecryptCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s := dc.rt.Settings

	c, err := dc.rt.codec(ctx)
	if err != nil {
		return err
	}

	src, err := loader.NewSource(ctx, s.Blob, s.AWSProfile)
	if err != nil {
		return err
	}

	plaintext, err := loader.NewLoader(c, dc.rt.Catalog).Plaintext(ctx, src)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(plaintext)
	return err
}
