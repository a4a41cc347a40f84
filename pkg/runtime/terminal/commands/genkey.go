package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kothscore/helios/pkg/services/codec"
	"github.com/kothscore/helios/pkg/services/config"
	"github.com/spf13/cobra"
)

type GenKeyCmd struct {
	out   string
	force bool
	rt    *Runtime
}

func NewGenKeyCmd(rt *Runtime) *cobra.Command {
	gc := &GenKeyCmd{rt: rt}
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate fresh key material as an INI profile",
		Args:  cobra.NoArgs,
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.out, "out", "", "Write the profile to this file instead of stdout")
	cmd.Flags().BoolVar(&gc.force, "force", false, "Overwrite the output file if it exists")

	return cmd
}

func (gc *GenKeyCmd) run(cmd *cobra.Command, _ []string) error {
	keys, err := codec.GenerateKeys(nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := config.WriteKeyProfile(&buf, gc.rt.Settings.KeyProfile, keys); err != nil {
		return fmt.Errorf("failed to write key profile: %w", err)
	}

	if gc.out == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if gc.force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(gc.out, flags, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s already exists, use --force to overwrite", gc.out)
	}
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote profile %s to %s\n", gc.rt.Settings.KeyProfile, gc.out)
	return nil
}
