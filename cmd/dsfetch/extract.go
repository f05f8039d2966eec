package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thelivingdead/dsfetch/internal/extract"
	"github.com/thelivingdead/dsfetch/internal/progress"
)

// runExtract unzips every archive in the target directory.
func runExtract(args []string) int {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)

	dir := fs.String("dir", "", "Directory containing downloaded archives (required)")
	dest := fs.String("dest", "", "Destination directory (default: same as -dir)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: dsfetch extract [options]

Extract every .zip archive in the download directory. Archives are
processed one at a time; already-extracted files are overwritten.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Error: -dir is required")
		fs.Usage()
		return ExitInvalidArgs
	}
	if *dest == "" {
		*dest = *dir
	}

	reporter := progress.NewReporter(os.Stderr)

	n, err := extract.Dir(*dir, *dest, reporter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	reporter.Statusf("extracted %d archives to %s", n, *dest)
	return ExitSuccess
}
