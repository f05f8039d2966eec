package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/thelivingdead/dsfetch/internal/config"
	"github.com/thelivingdead/dsfetch/internal/fetcher"
	fetchhttp "github.com/thelivingdead/dsfetch/internal/http"
	"github.com/thelivingdead/dsfetch/internal/progress"
)

// runDownload reconciles and transfers every catalog entry in order.
// Entries that fail are reported and skipped for the rest of the run;
// re-running resumes whatever was left incomplete.
func runDownload(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	configPath := fs.String("config", "", "Path to YAML config with the catalog (required)")
	dir := fs.String("dir", "", "Target directory (overrides config)")
	showProgress := fs.Bool("progress", false, "Show a per-file progress bar")
	chunkSize := fs.String("chunk-size", "", "Transfer chunk size, e.g. 64KiB (overrides config)")
	timeout := fs.Duration("timeout", 0, "Per-request timeout (overrides config)")
	retryAttempts := fs.Int("retry-attempts", 0, "Max retry attempts per request (overrides config)")
	retryBackoff := fs.Duration("retry-backoff", 0, "Initial retry backoff (overrides config)")
	retryMaxBackoff := fs.Duration("retry-max-backoff", 0, "Max retry backoff (overrides config)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: dsfetch download [options]

Fetch every file in the catalog to the target directory. Files already
complete are skipped; interrupted transfers resume where they left off.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	override := config.Config{
		Dir:      *dir,
		Progress: *showProgress,
		Timeout:  *timeout,
		Retry: config.RetryConfig{
			Attempts:   *retryAttempts,
			Backoff:    *retryBackoff,
			MaxBackoff: *retryMaxBackoff,
		},
	}
	if *chunkSize != "" {
		size, err := humanize.ParseBytes(*chunkSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid chunk size: %v\n", err)
			return ExitInvalidArgs
		}
		override.ChunkSize = int64(size)
	}

	cfg, err := loadConfig(*configPath, override)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return ExitInvalidArgs
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown; partials left behind are
	// picked up by the next run.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[dsfetch] Received interrupt, shutting down...")
		cancel()
	}()

	return downloadAll(ctx, cfg)
}

func downloadAll(ctx context.Context, cfg config.Config) int {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating target dir: %v\n", err)
		return ExitGeneralError
	}

	reporter := progress.NewReporter(os.Stderr)
	f := fetcher.New(fetcher.Options{
		ChunkSize: cfg.ChunkSize,
		HTTPOptions: fetchhttp.Options{
			Timeout:         cfg.Timeout,
			RetryAttempts:   cfg.Retry.Attempts,
			RetryBackoff:    cfg.Retry.Backoff,
			RetryMaxBackoff: cfg.Retry.MaxBackoff,
		},
		Progress: reporter,
		ShowBar:  cfg.Progress,
	})

	reporter.Statusf("downloading %d files to %s", len(cfg.Catalog), cfg.Dir)

	start := time.Now()
	var transferred int64
	probeFailures, transferFailures := 0, 0

	for _, entry := range cfg.Catalog {
		if ctx.Err() != nil {
			break
		}

		res, err := f.Fetch(ctx, entry, cfg.Dir)
		if res != nil {
			transferred += res.Transferred
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if errors.Is(err, fetcher.ErrProbe) {
				probeFailures++
			} else {
				transferFailures++
			}
			continue
		}
	}

	reporter.Statusf("done: %s transferred in %s",
		progress.FormatBytes(transferred), time.Since(start).Round(time.Second))

	switch {
	case transferFailures > 0 || ctx.Err() != nil:
		fmt.Fprintln(os.Stderr, "[dsfetch] Run again to resume incomplete files")
		return ExitTransferFailed
	case probeFailures > 0:
		return ExitSourceNotAccess
	default:
		return ExitSuccess
	}
}
