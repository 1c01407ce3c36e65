package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netintel/netintel/pkg/analytics"
	"github.com/netintel/netintel/pkg/errors"
	"github.com/netintel/netintel/pkg/render"
	"github.com/netintel/netintel/pkg/storage"
	"github.com/netintel/netintel/pkg/style"
)

// newExportCmd creates the export command for static pictures of the graph.
func newExportCmd(configPath *string) *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the graph to SVG, PNG, or DOT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case "svg", "png", "dot":
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want svg, png, or dot)", format)
			}
			if output == "" {
				output = "graph." + format
			}
			return runExport(cmd.Context(), *configPath, format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default graph.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include categories, scores and edge labels")
	return cmd
}

func runExport(ctx context.Context, configPath, format, output string, detailed bool) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore(ctx, store)

	g, err := storage.LoadOrSeed(ctx, store)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	g.SetInfluence(analytics.Influence(g))
	assignment, err := analytics.Communities(g)
	if err != nil {
		return err
	}
	g.SetCommunities(assignment)
	p.done("Recomputed analytics")

	renderCfg := style.LoadConfig(cfg.Render.StyleFile)
	dot := render.ToDOT(g, renderCfg, render.Options{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.RenderSVG(ctx, dot)
	case "png":
		data, err = render.RenderPNG(ctx, dot)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf("Wrote %s (%d bytes)", output, len(data))))
	return nil
}
