// file: cmd/serve.go
// version: 1.0.0
// guid: 0f3d8b27-c5a1-4e96-8b40-7d2e9a6c1f85

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/config"
	"github.com/jdfalk/cover-preview/internal/database"
	"github.com/jdfalk/cover-preview/internal/realtime"
	"github.com/jdfalk/cover-preview/internal/server"
	"github.com/jdfalk/cover-preview/internal/watcher"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preview API server",
	Long: `Serve preview sessions, the catalog and prop derivation over HTTP,
with server-sent events for state changes and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if err := openStore(); err != nil {
			return err
		}
		defer database.CloseStore()

		log := zap.L()
		hub := realtime.InitializeEventHub(log)
		srv := server.NewServer(server.Options{
			Sessions:           newManager(cat, hub, nil),
			Hub:                hub,
			Logger:             log,
			CatalogPath:        config.AppConfig.CatalogPath,
			DatabaseType:       config.AppConfig.DatabaseType,
			Viewport:           configuredViewport(),
			RateLimitPerMinute: config.AppConfig.RateLimitPerMinute,
		})
		if config.AppConfig.WatchCatalog {
			if err := srv.WatchCatalog(watcher.DefaultDebounce); err != nil {
				log.Warn("catalog watching disabled", zap.Error(err))
			}
		}

		cfg := server.GetDefaultServerConfig()
		cfg.Port, _ = cmd.Flags().GetString("port")
		cfg.Host, _ = cmd.Flags().GetString("host")
		cfg.ReadTimeout, _ = cmd.Flags().GetDuration("read-timeout")
		cfg.IdleTimeout, _ = cmd.Flags().GetDuration("idle-timeout")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Start(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "port to run the server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the server to")
	serveCmd.Flags().Duration("read-timeout", 15*time.Second, "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().Duration("idle-timeout", 60*time.Second, "idle timeout (e.g. 60s, 2m)")
}
