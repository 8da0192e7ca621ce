// Package main is the entry point for the patan CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toefel18/patan"
	"github.com/toefel18/patan/internal/config"
	"github.com/toefel18/patan/internal/monitoring"
)

// loadEnvFiles loads .env from standard locations
func loadEnvFiles() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	// Try loading from ~/.config/patan/.env first
	configEnv := filepath.Join(homeDir, ".config", "patan", ".env")
	if _, err := os.Stat(configEnv); err == nil {
		_ = godotenv.Load(configEnv)
	}

	// Also load local .env (can override)
	_ = godotenv.Load()
}

func main() {
	if len(os.Args) < 2 {
		printHelp(os.Stdout)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "stress":
		err = runStress(ctx, os.Args[2:], os.Stdout)
	case "report":
		err = runReport(ctx, os.Args[2:], os.Stdout)
	case "version", "-v", "--version":
		fmt.Println(patan.Version())
	case "help", "-h", "--help":
		printHelp(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printHelp(os.Stderr)
		os.Exit(2)
	}

	if err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

// resolveConfig resolves the config for a command.
// Checks: user flag -> filesystem locations -> embedded default.
// Returns raw bytes and source description.
func resolveConfig(userConfig string) ([]byte, string, error) {
	if userConfig != "" {
		data, err := os.ReadFile(userConfig)
		if err != nil {
			return nil, "", fmt.Errorf("config file not found: %s", userConfig)
		}
		return data, userConfig, nil
	}

	var searchPaths []string
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".config", "patan", "config.yaml"))
	}
	searchPaths = append(searchPaths, "configs/patan.yaml")

	for _, path := range searchPaths {
		if data, err := os.ReadFile(path); err == nil {
			return data, path, nil
		}
	}

	data, err := getEmbeddedConfig("default")
	if err != nil {
		return nil, "", fmt.Errorf("no config file found, specify --config path: %w", err)
	}
	return data, "(embedded) default.yaml", nil
}

// loadConfig resolves, parses and validates the configuration, then sets
// up the global logger from it.
func loadConfig(userConfig string, debug bool) (*config.Config, *monitoring.Logger, error) {
	loadEnvFiles()

	data, source, err := resolveConfig(userConfig)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadFromBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration from %s: %w", source, err)
	}

	logger := setupLogging(cfg.Logging, debug)
	logger.Debug().Str("config", source).Msg("configuration loaded")
	return cfg, logger, nil
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LoggingConfig, debug bool) *monitoring.Logger {
	logger := monitoring.Global(monitoring.LoggerConfig{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: cfg.Output,
	})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return logger
}

// commonFlags registers the flags every command accepts.
func commonFlags(fs *flag.FlagSet) (configPath *string, debug *bool) {
	configPath = fs.String("config", "", "path to config file")
	debug = fs.Bool("debug", false, "enable debug logging")
	return configPath, debug
}

// printHelp prints usage information
func printHelp(w io.Writer) {
	fmt.Fprintln(w, "patan - in-process statistics: samples, durations and occurrences")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  patan <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  stress       Hammer one instance from many goroutines and verify no write is lost")
	fmt.Fprintln(w, "  report       Run a synthetic workload and log periodic snapshot reports")
	fmt.Fprintln(w, "  version      Print version information")
	fmt.Fprintln(w, "  help         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common Options:")
	fmt.Fprintln(w, "  --config FILE        Config file (default: ~/.config/patan/config.yaml, then embedded)")
	fmt.Fprintln(w, "  --debug              Enable debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Stress Options:")
	fmt.Fprintln(w, "  --writers N --iterations N --resetters N --readers N --rate R --json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report Options:")
	fmt.Fprintln(w, "  --duration D         How long to run the workload (default 10s)")
	fmt.Fprintln(w, "  --workers N          Goroutines running synthetic tasks (default 4)")
	fmt.Fprintln(w, "  --json               Print the last report as JSON")
	fmt.Fprintln(w, "  --field PATH         Print one field of the last report (gjson path)")
	fmt.Fprintln(w, "  --prom-file FILE     Write the last report in Prometheus text format")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-20s Override logging.level\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %-20s Override reporter.interval\n", config.EnvReportInterval)
	if names, err := listEmbeddedConfigs(); err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Embedded configs: %v\n", names)
	}
}
