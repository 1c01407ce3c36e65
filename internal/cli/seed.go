package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netintel/netintel/pkg/storage"
)

// newSeedCmd creates the seed command. It writes the demonstration graph,
// analytics included, to the configured store, replacing whatever is there.
func newSeedCmd(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demonstration graph to the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath, logger)
			if err != nil {
				return err
			}

			var store storage.Store
			if output != "" {
				store = storage.NewFileStore(output)
			} else {
				store, err = openStore(ctx, cfg.Storage)
				if err != nil {
					return err
				}
				defer closeStore(ctx, store)
			}

			g := storage.SeedGraph()
			if err := store.Save(ctx, g); err != nil {
				return err
			}

			nodes, edges := g.Summary()
			fmt.Println(styleSuccess.Render(fmt.Sprintf("Seeded %d nodes and %d edges to %v", nodes, edges, store)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of the configured store")
	return cmd
}
