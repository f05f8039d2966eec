package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thelivingdead/dsfetch/internal/config"
	"github.com/thelivingdead/dsfetch/internal/progress"
	"github.com/thelivingdead/dsfetch/internal/verify"
)

// runValidate checks every catalog entry's on-disk file against its
// registered digest. Corrupt files are reported with guidance, never
// deleted or re-downloaded here.
func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	configPath := fs.String("config", "", "Path to YAML config with the catalog (required)")
	dir := fs.String("dir", "", "Target directory (overrides config)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: dsfetch validate [options]

Verify downloaded files against the catalog's SHA-256 digests.
Entries without a registered digest are reported but not failed.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, err := loadConfig(*configPath, config.Config{Dir: *dir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return ExitInvalidArgs
	}

	return validateAll(cfg)
}

func validateAll(cfg config.Config) int {
	reporter := progress.NewReporter(os.Stderr)
	reporter.Statusf("validating %d files in %s", len(cfg.Catalog), cfg.Dir)

	matched, failed, readErrors := 0, 0, 0

	for _, entry := range cfg.Catalog {
		name := entry.Filename()
		path := filepath.Join(cfg.Dir, name)

		out, err := verify.File(path, entry.SHA256)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			readErrors++
			continue
		}

		switch out.Result {
		case verify.Match:
			reporter.Statusf("file %s is validated", name)
			matched++
		case verify.Mismatch:
			reporter.Statusf("file %s is corrupt (got %s, want %s); delete it manually and re-run download",
				name, out.Actual, entry.SHA256)
			failed++
		case verify.NoDigestRegistered:
			reporter.Statusf("file %s has no registered digest", name)
		case verify.FileMissing:
			reporter.Statusf("file %s is missing; run download first", name)
			failed++
		}
	}

	reporter.Statusf("validation finished: %d ok, %d failed", matched, failed)

	switch {
	case failed > 0:
		return ExitValidationFailed
	case readErrors > 0:
		return ExitGeneralError
	default:
		return ExitSuccess
	}
}
