package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/netintel/netintel/internal/server"
	"github.com/netintel/netintel/pkg/storage"
	"github.com/netintel/netintel/pkg/style"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates the serve command. It loads (or seeds) the graph from
// the configured store and runs the HTTP API until interrupted.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the netintel HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(ctx context.Context, configPath, addrFlag string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore(ctx, store)

	payloads, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer payloads.Close()

	p := newProgress(logger)
	g, err := storage.LoadOrSeed(ctx, store)
	if err != nil {
		return err
	}
	nodes, edges := g.Summary()
	p.done(fmt.Sprintf("Loaded graph with %d nodes and %d edges", nodes, edges))

	renderCfg := style.LoadConfig(cfg.Render.StyleFile)
	srv := server.New(g, store, payloads, renderCfg, logger)

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", addr, "store", fmt.Sprint(store))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
