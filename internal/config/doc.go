// Package config defines configuration structures for the dsfetch CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (DSFETCH_ prefix)
//   - YAML configuration file (which also carries the catalog)
//
// The configuration is built once at startup and passed explicitly to
// each component; nothing reads it from process-wide state afterwards.
//
// # Structure
//
//	type Config struct {
//	    Dir       string
//	    ChunkSize int64
//	    Progress  bool
//	    Timeout   time.Duration
//	    Retry     RetryConfig
//	    Catalog   catalog.Catalog
//	}
//
//	type RetryConfig struct {
//	    Attempts   int
//	    Backoff    time.Duration
//	    MaxBackoff time.Duration
//	}
package config
