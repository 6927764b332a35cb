package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"work-manifest/core/internal/builder"
	"work-manifest/core/internal/store"
)

func NewCheckCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify every manifest entry still points at a loadable file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, g)
			if err != nil {
				return err
			}

			m, err := store.Read(cfg.OutputPath())
			if err != nil {
				return err
			}

			problems := builder.Verify(cfg, m)
			for _, p := range problems {
				log.Warn().Str("name", p.Name).Str("path", p.Path).Msg(p.Reason)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Name, p.Path, p.Reason)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d stale manifest entries in %s, run generate", len(problems), cfg.OutputPath())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok items=%d\n", len(m.Items))
			return nil
		},
	}
}
