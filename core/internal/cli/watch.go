package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"work-manifest/core/internal/builder"
	"work-manifest/core/internal/watch"
)

func NewWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the manifest whenever the asset tree changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, g)
			if err != nil {
				return err
			}
			debounce, err := cfg.Debounce()
			if err != nil {
				return err
			}

			b := builder.New(cfg, log)
			if _, err := b.Run(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watch.Run(ctx, watch.Options{
				Root: cfg.RootPath(),
				// project folder, model folder, then the model search depth
				Levels:   cfg.MaxDepth + 2,
				Debounce: debounce,
				Ignore:   []string{cfg.OutputPath()},
				Logger:   log,
			}, func() error {
				_, err := b.Run()
				return err
			})
		},
	}
}
