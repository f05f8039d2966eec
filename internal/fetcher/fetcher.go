package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/thelivingdead/dsfetch/internal/catalog"
	fetchhttp "github.com/thelivingdead/dsfetch/internal/http"
	"github.com/thelivingdead/dsfetch/internal/progress"
)

// Sentinel errors classifying per-entry failures.
var (
	// ErrProbe indicates the metadata probe could not reach the remote.
	ErrProbe = errors.New("fetcher: remote probe failed")

	// ErrTransfer indicates the body transfer stopped mid-stream. The
	// partial file stays on disk; the next run resumes it.
	ErrTransfer = errors.New("fetcher: transfer interrupted")
)

// Options configures the fetcher.
type Options struct {
	// ChunkSize is the transfer buffer size. Memory use is bounded by
	// this regardless of file size.
	// Default: 32KiB
	ChunkSize int64

	// HTTPOptions configures the HTTP client.
	HTTPOptions fetchhttp.Options

	// Progress receives status lines and, when ShowBar is set,
	// per-file progress bars. May be nil.
	Progress *progress.Reporter

	// ShowBar enables the progress bar on top of status lines.
	ShowBar bool
}

// Result reports what one Fetch call decided and did.
type Result struct {
	// Decision is the reconciliation outcome for the entry.
	Decision Decision

	// Path is the local target file.
	Path string

	// Transferred is the number of bytes downloaded by this call.
	Transferred int64

	// Total is the remote-reported size, 0 if unknown.
	Total int64
}

// Fetcher reconciles catalog entries against local files and performs
// the resulting transfers, one entry at a time.
type Fetcher struct {
	client *fetchhttp.Client
	opts   Options
}

// New creates a Fetcher.
func New(opts Options) *Fetcher {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 32 * 1024
	}
	if opts.HTTPOptions == (fetchhttp.Options{}) {
		opts.HTTPOptions = fetchhttp.DefaultOptions()
	}
	return &Fetcher{
		client: fetchhttp.NewClient(opts.HTTPOptions),
		opts:   opts,
	}
}

// Fetch processes a single catalog entry: probe the remote size,
// inspect the local file, reconcile, and transfer as decided. The
// entry's target is dir joined with the URL's final path segment.
//
// An interrupted transfer returns ErrTransfer and leaves the partial
// file at whatever length was written; re-running Fetch resumes it.
func (f *Fetcher) Fetch(ctx context.Context, entry catalog.Entry, dir string) (*Result, error) {
	name := entry.Filename()
	path := filepath.Join(dir, name)

	info, err := f.client.Head(ctx, entry.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProbe, entry.URL, err)
	}

	local, err := InspectLocal(path)
	if err != nil {
		return nil, err
	}

	dec := Reconcile(local, info.Size)
	res := &Result{Decision: dec, Path: path, Total: info.Size}

	switch dec.Mode {
	case ModeSkip:
		f.opts.Progress.Statusf("file %s is complete, skipping", name)
		return res, nil
	case ModeResume:
		f.opts.Progress.Statusf("file %s is incomplete, resuming at %s",
			name, progress.FormatBytes(dec.Offset))
	default:
		f.opts.Progress.Statusf("file %s does not exist, starting download", name)
	}

	n, err := f.transfer(ctx, entry.URL, path, dec, info.Size)
	res.Transferred = n
	if err != nil {
		return res, err
	}
	return res, nil
}

// transfer streams the response body to the target file in bounded
// chunks. Fresh starts truncate; resumes append and never truncate the
// bytes already on disk.
func (f *Fetcher) transfer(ctx context.Context, url, path string, dec Decision, total int64) (int64, error) {
	var (
		resp  *fetchhttp.BodyResponse
		flags int
		err   error
	)

	if dec.Mode == ModeResume {
		resp, err = f.client.GetFrom(ctx, url, dec.Offset)
		flags = os.O_WRONLY | os.O_APPEND
	} else {
		resp, err = f.client.Get(ctx, url)
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrTransfer, url, err)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if total > 0 {
		// Never write beyond the declared total, even if the server
		// keeps sending.
		body = io.LimitReader(body, total-dec.Offset)
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLocalState, err)
	}

	base := filepath.Base(path)
	if f.opts.ShowBar {
		f.opts.Progress.Start(base, total, dec.Offset)
	}

	written, err := f.copyChunks(body, file)
	if cerr := file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return written, fmt.Errorf("%w: %s at byte %d: %v", ErrTransfer, base, dec.Offset+written, err)
	}

	if f.opts.ShowBar {
		f.opts.Progress.Finish()
	}
	return written, nil
}

// copyChunks copies src to dst in ChunkSize pieces, reporting each
// flushed chunk to the progress reporter. Unlike io.Copy it keeps the
// byte count even on error, so callers can report how far the partial
// file got.
func (f *Fetcher) copyChunks(src io.Reader, dst *os.File) (int64, error) {
	buf := make([]byte, f.opts.ChunkSize)
	var written int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			nw, writeErr := dst.Write(buf[:n])
			written += int64(nw)
			f.opts.Progress.Add(int64(nw))
			if writeErr != nil {
				return written, fmt.Errorf("write: %w", writeErr)
			}
			if nw != n {
				return written, io.ErrShortWrite
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("read: %w", readErr)
		}
	}
}
