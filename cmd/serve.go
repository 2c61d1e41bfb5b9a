package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akramhany/repomind/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts an HTTP server exposing the indexed repository: POST /api/ask answers questions with citations, GET /api/search returns raw retrieval results.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port <= 0 {
		port = cfg.ServerPort
	}
	allowAll, _ := cmd.Flags().GetBool("allow-all-origins")

	retriever, err := openRetriever(cfg)
	if err != nil {
		return err
	}

	eng, err := createEngineFromConfig(cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:     port,
		TopK:     cfg.TopK,
		AllowAll: allowAll,
	}, retriever, eng)

	// Graceful shutdown on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
