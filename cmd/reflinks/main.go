// Package main provides the reflinks binary entry point.
// Reflinks finds <ref> citations in wikitext files and merges duplicated
// citations into named references.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/c360studio/reflinks/config"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "reflinks"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Find and merge duplicate wikitext citations",
		Long: `Reflinks scans wikitext for <ref>...</ref> citations.

It provides:
- scan: list the citations of each file
- fix: merge citations with identical content into one named citation
  followed by <ref name="..."/> stubs
- watch: fix files as they change
- config: create or print the configuration`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(scanCmd(opts))
	cmd.AddCommand(fixCmd(opts))
	cmd.AddCommand(watchCmd(opts))
	cmd.AddCommand(configCmd(opts))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup loads the configuration and installs the default logger.
func setup(opts *globalOptions, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	// Bootstrap logger for config loading, replaced once the level is known
	bootLevel, err := config.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, nil, err
	}
	boot := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: bootLevel}))

	cfg, err := config.NewLoader(boot).Load(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var logger *slog.Logger
	if cfg.Log.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(stderr, handlerOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(stderr, handlerOpts))
	}
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// patternsOrDefault returns args, or the configured file patterns when no
// arguments were given.
func patternsOrDefault(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Files
}
