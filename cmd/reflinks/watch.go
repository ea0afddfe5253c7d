package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/c360studio/reflinks/document"
	"github.com/c360studio/reflinks/metrics"
	"github.com/c360studio/reflinks/watcher"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func watchCmd(opts *globalOptions) *cobra.Command {
	var (
		metricsAddr string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a directory and merge duplicate citations as files change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				cfg.Metrics.ListenAddr = metricsAddr
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.Dedupe.DryRun = dryRun
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			absRoot, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolve watch root: %w", err)
			}
			info, err := os.Stat(absRoot)
			if err != nil {
				return fmt.Errorf("stat watch root: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", absRoot)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.New(reg)

			if cfg.Metrics.ListenAddr != "" {
				srv := startMetricsServer(cfg.Metrics.ListenAddr, reg, logger)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			w, err := watcher.New(cfg.Watch, absRoot, logger)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Stop()
			metrics.RegisterWatchDropped(reg, w.DroppedEvents)

			processor := document.NewProcessor(document.ProcessorConfig{
				NamePrefix: cfg.Dedupe.NamePrefix,
				DryRun:     cfg.Dedupe.DryRun,
			}, m, logger)

			if err := initialPass(ctx, w, processor, absRoot, logger); err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			return runWatch(ctx, w, processor, logger)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report merges without writing files")

	return cmd
}

// initialPass processes every watched file already present under root.
func initialPass(ctx context.Context, w *watcher.Watcher, p *document.Processor, root string, logger *slog.Logger) error {
	files, err := document.ResolveFiles([]string{filepath.Join(root, "**", "*")})
	if errors.Is(err, document.ErrNoMatch) {
		return nil
	}
	if err != nil {
		return err
	}

	processed := 0
	for _, path := range files {
		if !w.Accepts(path) {
			continue
		}
		if err := handleFile(ctx, w, p, path, logger); err != nil {
			return err
		}
		processed++
	}
	logger.Info("Initial pass complete", "files", processed)
	return nil
}

// runWatch processes watch events until the context ends or the watcher stops.
func runWatch(ctx context.Context, w *watcher.Watcher, p *document.Processor, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Watcher stopping")
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Operation == watcher.OpDelete {
				logger.Debug("Document removed", "path", ev.Path)
				continue
			}
			if err := handleFile(ctx, w, p, ev.AbsPath, logger); err != nil {
				return err
			}
		}
	}
}

// handleFile processes one file and records its resulting hash so the
// watcher ignores the change caused by our own write. Only context
// cancellation is returned as an error.
func handleFile(ctx context.Context, w *watcher.Watcher, p *document.Processor, path string, logger *slog.Logger) error {
	result, err := p.ProcessFile(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("Failed to process document", "path", path, "error", err)
		return nil
	}

	w.SetHash(w.Rel(path), result.Hash)
	if result.Changed {
		logger.Info("Merged duplicate citations",
			"path", w.Rel(path),
			"groups", len(result.Report.Merged),
			"replaced", result.Report.Replaced(),
			"written", result.Written)
	}
	return nil
}

func startMetricsServer(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}
