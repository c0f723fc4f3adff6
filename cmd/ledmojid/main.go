// Package main is the entry point for the ledmoji render daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dshills/ledmoji/internal/app"
	"github.com/dshills/ledmoji/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	// A .env file is optional; the environment wins on conflicts.
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading %s: %v\n", opts.EnvFile, err)
			return 1
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(cfg.LogLevel)
	logger := app.NewLogger(logCfg)

	application, err := app.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		logger.Info("received %s, shutting down", sig)
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// options holds the command line flags.
type options struct {
	EnvFile  string
	LogLevel string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.EnvFile, "env", "", "Path to a .env file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ledmojid - emoji LED matrix render daemon\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ledmojid [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nConfiguration is read from LEDMOJI_* environment variables;\n")
		fmt.Fprintf(os.Stderr, "%s is required.\n", config.EnvEmojiDir)
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("ledmojid %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
