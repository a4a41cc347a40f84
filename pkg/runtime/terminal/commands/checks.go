package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type ChecksCmd struct {
	rt *Runtime
}

func NewChecksCmd(rt *Runtime) *cobra.Command {
	cc := &ChecksCmd{rt: rt}
	return &cobra.Command{
		Use:   "checks",
		Short: "List supported condition types",
		Args:  cobra.NoArgs,
		RunE:  cc.run,
	}
}

func (cc *ChecksCmd) run(cmd *cobra.Command, _ []string) error {
	kinds := cc.rt.Catalog.Kinds()
	if len(kinds) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No condition types registered")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Supported condition types:\n%s\n", strings.Join(kinds, "\n"))
	return nil
}
