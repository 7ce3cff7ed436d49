// Package serve starts the HTTP API server.
package serve

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"paisahub/finassist/cmd/root"
	"paisahub/finassist/internal/server"
)

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Serve the finance assistant as a JSON API, with AI-assisted expense entry when available.`,
	Run:   serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) {
	a, cleanup := root.NewAssistant()
	defer cleanup()

	srv := server.New(root.Cfg.HTTP.Addr, a, root.NewParser(), root.NewCategorizer(), root.Log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			root.Log.WithError(err).Fatal("HTTP server failed")
		}
	case sig := <-stop:
		root.Log.WithField("signal", sig.String()).Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			root.Log.WithError(err).Error("Graceful shutdown failed")
		}
	}
}
