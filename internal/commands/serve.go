package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/api"
	"github.com/Brottuetchen/TimeTrack/internal/db"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the timetrack API server",
	Long: `Start the HTTP API that agents push events to and front ends read
sessions and assignments from. Runs until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		logger := newLogger()
		defer logger.Sync()

		server, err := api.NewServer(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		fmt.Printf("🚀 timetrack API listening on %s:%d\n", cfg.Server.Host, cfg.Server.Port)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		case sig := <-stop:
			logger.Info("shutting down", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("⏹️  Server stopped")
	},
}
