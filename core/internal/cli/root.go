package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"work-manifest/core/internal/config"
	"work-manifest/core/internal/logging"
	"work-manifest/core/internal/version"
)

type globalFlags struct {
	project    string
	configPath string
	logLevel   string
	logJSON    bool
}

func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "work-manifest",
		Short:         "Generate the WORK_DISPLAY manifest for the portfolio viewer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.project, "project", ".", "Project root; emitted paths are relative to it")
	pf.StringVar(&g.configPath, "config", "", "Config file (default: <project>/"+config.DefaultFile+" if present)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level (debug|info|warn|error), overrides config")
	pf.BoolVar(&g.logJSON, "log-json", false, "Emit JSON log lines instead of console output")

	cmd.AddCommand(NewGenerateCmd(g))
	cmd.AddCommand(NewCheckCmd(g))
	cmd.AddCommand(NewWatchCmd(g))
	cmd.AddCommand(NewVersionCmd())

	cmd.SetVersionTemplate(fmt.Sprintf("%s (%s/%s)\n", version.Version, runtime.GOOS, runtime.GOARCH))
	cmd.Version = version.Version

	return cmd
}

// setup resolves configuration and the run logger shared by every command.
func setup(cmd *cobra.Command, g *globalFlags) (config.Config, zerolog.Logger, error) {
	path := g.configPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(g.project, config.DefaultFile)
	}

	cfg, err := config.Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, zerolog.Nop(), err
		}
		cfg = config.Default()
	}
	cfg.ProjectRoot = g.project
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, zerolog.Nop(), fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, JSON: g.logJSON, Out: cmd.ErrOrStderr()})
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, log, nil
}
