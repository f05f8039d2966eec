package main

import (
	"fmt"
	"os"

	"github.com/thelivingdead/dsfetch/internal/config"
)

// Exit codes
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitInvalidArgs      = 2
	ExitSourceNotAccess  = 3
	ExitTransferFailed   = 5
	ExitValidationFailed = 7
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "download":
		return runDownload(cmdArgs)
	case "validate":
		return runValidate(cmdArgs)
	case "extract":
		return runExtract(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: dsfetch <command> [options]

Commands:
  download  Fetch every catalog file, resuming partial transfers
  validate  Check downloaded files against their catalog digests
  extract   Unzip all downloaded archives

Run 'dsfetch <command> -h' for command-specific help.`)
}

// loadConfig builds the effective configuration: defaults, then the
// YAML file, then DSFETCH_ environment variables, then flag overrides.
func loadConfig(path string, override config.Config) (config.Config, error) {
	if path == "" {
		return config.Config{}, fmt.Errorf("-config is required")
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}
	cfg = cfg.Merge(override)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
