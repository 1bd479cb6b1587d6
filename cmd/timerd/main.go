// Command timerd serves the break-timer HTTP API.
//
// Clients create named countdown timers and start, pause, reset, or delete
// them through a small JSON API; remaining time is recomputed on demand from
// the persisted state, so the server runs no background clock.
//
// Usage:
//
//	timerd [flags]
//
// Flags:
//
//	--port int          HTTP server port (default 8080)
//	--db string         SQLite database path (default "./timers.db")
//	--log-level string  Log level: debug, info, warn, error (default "info")
//	--config string     Optional YAML config file; flags override file values
//
// Examples:
//
//	# Start on the default port with a local database file
//	timerd
//
//	# Use an in-memory database (state is lost on exit)
//	timerd --db :memory:
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/breaktimer/timerd/internal/api"
	"github.com/breaktimer/timerd/internal/config"
	"github.com/breaktimer/timerd/internal/logging"
	"github.com/breaktimer/timerd/internal/store"
	"github.com/breaktimer/timerd/internal/timer"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

var (
	cfgFile  string
	port     int
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "timerd",
	Short:         "timerd serves named countdown timers over HTTP",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.Flags().IntVar(&port, "port", 8080, "HTTP server port")
	rootCmd.Flags().StringVar(&dbPath, "db", "./timers.db", "SQLite database path")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
	}

	// Flags set on the command line override the config file.
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	logger := logging.New(cfg.LogLevel)

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	service := timer.NewService(st)
	srv := api.NewServer(api.ServerConfig{
		Port:    cfg.Port,
		Version: Version,
	}, service, logger)

	logger.Infof("timerd %s listening on http://localhost:%d", Version, cfg.Port)
	logger.Infof("database: %s", cfg.DBPath)

	return srv.ListenAndServe()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
