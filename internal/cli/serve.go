package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/claimguard/internal/pipeline"
	"github.com/ppiankov/claimguard/internal/server"
)

var (
	serveHost string
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the claim analysis HTTP server",
	Long: `Serve starts an HTTP server exposing the analysis pipeline:
- GET  /              service identity
- POST /analyze_claim full analysis of one claim

The server accepts both PascalCase and snake_case request fields and shuts
down gracefully on SIGINT/SIGTERM.

Example:
  claimguard serve
  claimguard serve --port 8080
  CLAIMGUARD_SERVER_PORT=8080 claimguard serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	// CRITICAL: narratives are CLI-only; the server never runs a provider
	cfg.LLM.Provider = ""

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return eris.Wrap(err, "build pipeline")
	}

	srv := server.New(cfg, p, version)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("shutdown failed", zap.Error(err))
		}
	}()

	return srv.Start()
}
