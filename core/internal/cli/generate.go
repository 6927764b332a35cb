package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"work-manifest/core/internal/builder"
)

func NewGenerateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Scan the asset root and write manifest.json (default action)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g)
		},
	}
}

func runGenerate(cmd *cobra.Command, g *globalFlags) error {
	cfg, log, err := setup(cmd, g)
	if err != nil {
		return err
	}

	res, err := builder.New(cfg, log).Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "output=%s items=%d skipped=%d changed=%t\n",
		res.Output.Path, len(res.Selections), len(res.Skipped), res.Output.Changed)
	return nil
}
