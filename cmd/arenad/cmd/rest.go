package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	serverconfig "github.com/cosmos/cosmos-sdk/server/config"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func restServerCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rest-server",
		Short: "Serve the ledger query routes over HTTP from the ledger under --home",
		Long: `Serve the ledger query routes over HTTP from the ledger under --home. The
ledger stays open, and locked, until the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cfg, err := openHome(cmd, v, true)
			if err != nil {
				return err
			}
			defer a.Close()

			rtr := mux.NewRouter()
			a.RegisterAPIRoutes(rtr)
			return serve(cmd.Context(), a.Logger(), cfg, rtr)
		},
	}

	cmd.Flags().String(flagAPIAddress, serverconfig.DefaultConfig().API.Address, "the API server address to listen on")
	return cmd
}

// serve runs the API server until ctx is done or the process is interrupted.
func serve(ctx context.Context, logger log.Logger, cfg AppConfig, handler http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.listenAddress(),
		Handler:           handler,
		ReadHeaderTimeout: time.Duration(cfg.API.RPCReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.API.RPCWriteTimeout) * time.Second,
		MaxHeaderBytes:    int(cfg.API.RPCMaxBodyBytes),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting API server", "address", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("stopping API server", "address", srv.Addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
