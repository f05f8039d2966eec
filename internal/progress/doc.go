// Package progress provides progress reporting for downloads.
//
// This package renders a per-file progress bar plus human-readable
// status lines on stderr. Resumed transfers start the bar at the
// resume offset so the displayed position matches the bytes already
// on disk.
//
// # Usage
//
//	reporter := progress.NewReporter(os.Stderr)
//
//	reporter.Start("Adjectives_1of8.zip", totalBytes, resumeOffset)
//	// per chunk:
//	reporter.Add(int64(n))
//	reporter.Finish()
//
// The output format is operator-facing and not a machine contract.
package progress
