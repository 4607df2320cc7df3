package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/geopicker/internal/catalog"
	"github.com/lehigh-university-libraries/geopicker/internal/export"
	"github.com/lehigh-university-libraries/geopicker/internal/handlers"
	"github.com/lehigh-university-libraries/geopicker/internal/picking"
	"github.com/lehigh-university-libraries/geopicker/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port string
	var sessionStore string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for picking images",
		Long: `Starts the geopicker web interface.

Browse categories page by page, open a category to see its images with the
current selection first, select or unselect an image, and export all
selections to an .xlsx file in the data directory.`,
		Example: `  # Start server on default port 8888
  geopicker serve --img-dir ./static/images

  # Start server on custom port, remembering pages across restarts
  geopicker serve --port 3000 --session-store sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Addr = ":" + port
			}
			if cmd.Flags().Changed("session-store") {
				cfg.SessionStore = sessionStore
			}

			sessions, err := storage.OpenSessionStore(cfg.SessionStore, cfg.DataDir)
			if err != nil {
				return err
			}
			defer sessions.Close()

			selections := storage.NewSelectionStore(cfg.DataDir)
			picker := picking.NewService(catalog.New(cfg.ImgDir), selections, cfg.PageSize)
			exporter := export.NewJob(cfg.ImgDir, cfg.DataDir, selections)
			exporter.Parquet = cfg.ExportParquet

			handler := handlers.New(picker, exporter, sessions, cfg.ImgDir)

			addr := cfg.Addr
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Geopicker interface available", "addr", addr, "img_dir", cfg.ImgDir, "data_dir", cfg.DataDir)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&sessionStore, "session-store", "memory", "Where to remember each browser's last page (memory or sqlite)")

	return cmd
}
