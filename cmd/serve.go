package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd-japan/fargate-data-api/internal/api"
	"github.com/dd-japan/fargate-data-api/internal/shared"
	"github.com/dd-japan/fargate-data-api/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	serveAddress    string
	logLevel        string
	tracingEndpoint string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the data API server",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", defaultAddress(), "Address for the API server to listen on")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&tracingEndpoint, "tracing-endpoint", "", "Jaeger collector endpoint (tracing disabled when empty)")
}

// defaultAddress honors the PORT convention used by container orchestrators.
func defaultAddress() string {
	return ":" + shared.EnvOr("PORT", "8000")
}

func runServe(cmd *cobra.Command, args []string) {
	logger := shared.NewLogger(shared.ParseLogLevel(logLevel))

	recordStore := store.New()
	metrics := api.NewMetrics(prometheus.DefaultRegisterer)

	var tracer *api.Tracer
	if tracingEndpoint != "" {
		t, err := api.NewTracer(api.ServiceName, tracingEndpoint)
		if err != nil {
			logger.Error("failed to initialize tracing: %v", err)
			os.Exit(1)
		}
		tracer = t
	}

	srv := api.NewServer(api.ServerConfig{
		Address: serveAddress,
		Store:   recordStore,
		Logger:  logger,
		Metrics: metrics,
		Tracer:  tracer,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting %s on %s", api.ServiceName, serveAddress)
		if err := srv.Start(); err != nil {
			logger.Error("server error: %v", err)
			cancel()
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received signal %v, initiating shutdown", sig)
	case <-ctx.Done():
		logger.Info("shutting down due to error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown: %v", err)
	}
}
