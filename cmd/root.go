// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/config"
	"github.com/jdfalk/cover-preview/internal/database"
	"github.com/jdfalk/cover-preview/internal/logging"
	"github.com/jdfalk/cover-preview/internal/metrics"
	"github.com/jdfalk/cover-preview/internal/preview"
	"github.com/jdfalk/cover-preview/internal/realtime"
	"github.com/jdfalk/cover-preview/internal/session"
)

var cfgFile string
var catalogPath string
var databasePath string
var databaseType string
var enableSQLite bool
var logLevel string
var logFile string

// closeLog flushes the file logger of full screen commands.
var closeLog = func() error { return nil }

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cover-preview",
	Short: "Preview book covers for every edition in a catalog",
	Long: `Cover Preview walks a catalog of friends, documents and editions and
derives the props a cover renderer needs: trim size, scale, spine width,
blurb and custom styling. It serves the preview state over HTTP, drives it
from the terminal and writes capture manifests for screenshot runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.AppConfig.Validate(); err != nil {
			return err
		}
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = zap.L().Sync()
		return closeLog()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cover-preview.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "catalog.yaml", "catalog file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "cover-preview.db", "path to the snapshot database")
	rootCmd.PersistentFlags().StringVar(&databaseType, "db-type", "pebble", "database type: pebble (default), sqlite or memory")
	rootCmd.PersistentFlags().BoolVar(&enableSQLite, "enable-sqlite3-i-know-the-risks", false, "enable SQLite3 database (WARNING: cross-compilation issues, PebbleDB recommended)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error or none")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	viper.BindPFlag("catalog_path", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("database_type", rootCmd.PersistentFlags().Lookup("db-type"))
	viper.BindPFlag("enable_sqlite3_i_know_the_risks", rootCmd.PersistentFlags().Lookup("enable-sqlite3-i-know-the-risks"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(propsCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cover-preview")
	}

	viper.SetEnvPrefix("COVER_PREVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()

	// Ensure database directory exists
	if config.AppConfig.DatabaseType != "memory" && config.AppConfig.DatabasePath != "" {
		dbDir := filepath.Dir(config.AppConfig.DatabasePath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating database directory: %v\n", err)
			}
		}
	}
}

// setupLogging sends logs to stderr, or to --log-file. The terminal UI owns
// the screen, so without a log file it logs nothing.
func setupLogging(cmd *cobra.Command) error {
	level := config.AppConfig.LogLevel
	if logFile != "" || cmd == tuiCmd {
		_, closer, err := logging.InitFile(level, logFile)
		if err != nil {
			return err
		}
		closeLog = closer
		return nil
	}
	_, err := logging.Init(level)
	return err
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(config.AppConfig.CatalogPath)
	if err != nil {
		return nil, err
	}
	for _, w := range multierr.Errors(cat.Warnings()) {
		zap.L().Warn("catalog entry cannot be navigated", zap.Error(w))
	}
	metrics.SetFriends(cat.FriendCount())
	metrics.SetEditions(cat.EditionCount())
	return cat, nil
}

func openStore() error {
	if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	zap.L().Info("using database",
		zap.String("path", config.AppConfig.DatabasePath),
		zap.String("type", config.AppConfig.DatabaseType))
	return nil
}

func configuredViewport() preview.Viewport {
	return preview.Viewport{Width: config.AppConfig.ViewportWidth, Height: config.AppConfig.ViewportHeight}
}

func newManager(cat *catalog.Catalog, hub *realtime.EventHub, onChange func(session.View)) *session.Manager {
	return session.NewManager(cat, session.Options{
		Store:        database.GlobalStore,
		Hub:          hub,
		Logger:       zap.L(),
		SpinDebounce: config.AppConfig.SpinDebounce,
		Viewport:     configuredViewport(),
		OnChange:     onChange,
	})
}
