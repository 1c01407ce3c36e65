package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Typically
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the netintel CLI. The root command wires the --verbose and
// --config flags, attaches a logger to the context, and dispatches to the
// serve, seed, export, and top subcommands. ctx carries cancellation from
// the caller's signal handling.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "netintel",
		Short:        "netintel maps influence networks between companies",
		Long:         `netintel maintains a directed graph of companies and their relationships, scores each company's influence, detects communities, and serves an interactive visualization.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("netintel %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file (default $NETINTEL_CONFIG or netintel.toml)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newSeedCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newTopCmd(&configPath))

	return root.ExecuteContext(ctx)
}

// resolveConfigPath picks the config file path from the flag, the
// NETINTEL_CONFIG environment variable, or the default location.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("NETINTEL_CONFIG"); env != "" {
		return env
	}
	return "netintel.toml"
}
