package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/netintel/netintel/pkg/analytics"
	"github.com/netintel/netintel/pkg/graph"
	"github.com/netintel/netintel/pkg/storage"
)

// newTopCmd creates the top command, a quick influence leaderboard.
func newTopCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most influential nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(cmd.Context(), *configPath, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of nodes to show")
	return cmd
}

func runTop(ctx context.Context, configPath string, limit int) error {
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

	g.SetInfluence(analytics.Influence(g))
	assignment, err := analytics.Communities(g)
	if err != nil {
		return err
	}
	g.SetCommunities(assignment)

	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i].InfluenceOr(0), nodes[j].InfluenceOr(0)
		if a != b {
			return a > b
		}
		return nodes[i].ID < nodes[j].ID
	})
	if limit > 0 && limit < len(nodes) {
		nodes = nodes[:limit]
	}

	fmt.Println(styleTitle.Render("Most influential nodes"))
	for i, n := range nodes {
		fmt.Printf("%s  %s  %s  %s\n",
			styleRank.Render(fmt.Sprintf("%2d.", i+1)),
			styleValue.Render(fmt.Sprintf("%-20s", n.DisplayLabel())),
			styleNumber.Render(fmt.Sprintf("%.3f", n.InfluenceOr(0))),
			styleDim.Render(communityLabel(n)),
		)
	}
	return nil
}

func communityLabel(n *graph.Node) string {
	if n.Community == nil {
		return "community -"
	}
	return fmt.Sprintf("community %d", *n.Community)
}
