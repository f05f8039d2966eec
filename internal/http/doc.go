// Package http provides an HTTP client for large file downloads.
//
// This package handles:
//   - HEAD requests to probe file metadata without a body transfer
//   - Open-ended range requests (bytes=offset-) for resumed downloads
//   - Retry with exponential backoff on transport errors and 5xx
//   - ETag extraction
//
// # Usage
//
//	client := http.NewClient(Options{
//	    Timeout:       30 * time.Second,
//	    RetryAttempts: 5,
//	})
//
//	// Probe file metadata
//	info, err := client.Head(ctx, url)
//	// info.Size (0 = unknown), info.AcceptsRanges
//
//	// Resume from an offset
//	resp, err := client.GetFrom(ctx, url, offset)
//	defer resp.Body.Close()
package http
