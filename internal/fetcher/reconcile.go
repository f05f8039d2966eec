package fetcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrLocalState is returned when the local file state cannot be read.
var ErrLocalState = errors.New("fetcher: local state unavailable")

// LocalState describes the on-disk state of a target file.
type LocalState struct {
	Path   string
	Exists bool
	Size   int64
}

// InspectLocal reads the target path's state from the filesystem.
// A missing file is a normal state, not an error.
func InspectLocal(path string) (LocalState, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return LocalState{Path: path}, nil
	}
	if err != nil {
		return LocalState{}, fmt.Errorf("%w: %v", ErrLocalState, err)
	}
	if info.IsDir() {
		return LocalState{}, fmt.Errorf("%w: %s is a directory", ErrLocalState, path)
	}
	return LocalState{Path: path, Exists: true, Size: info.Size()}, nil
}

// Mode is the transfer decision for one catalog entry.
type Mode int

const (
	// ModeFreshStart truncates (or creates) the target and downloads
	// the whole file.
	ModeFreshStart Mode = iota

	// ModeResume appends to the target starting from its current size,
	// requesting only the remaining bytes.
	ModeResume

	// ModeSkip performs no I/O; the target is already complete.
	ModeSkip
)

func (m Mode) String() string {
	switch m {
	case ModeFreshStart:
		return "fresh"
	case ModeResume:
		return "resume"
	case ModeSkip:
		return "skip"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Decision is the outcome of reconciling local and remote state.
type Decision struct {
	Mode Mode

	// Offset is the byte position to resume from. Only meaningful when
	// Mode is ModeResume.
	Offset int64
}

// Reconcile compares the local file state against the remote-reported
// size and decides how to transfer. remoteSize 0 means the remote did
// not report a size.
//
// Size equality is the sole completeness signal. When the remote size
// is unknown, an existing file is assumed complete rather than
// resumed: appending to a good file against an unknown total would
// corrupt it, and a fresh download could discard gigabytes of valid
// data. A local file larger than the known remote size means the
// remote changed or the local copy is damaged; the transfer restarts
// from scratch.
//
// Reconcile is pure: calling it twice with the same inputs yields the
// same decision.
func Reconcile(local LocalState, remoteSize int64) Decision {
	if !local.Exists {
		return Decision{Mode: ModeFreshStart}
	}
	if remoteSize <= 0 {
		return Decision{Mode: ModeSkip}
	}
	switch {
	case local.Size < remoteSize:
		return Decision{Mode: ModeResume, Offset: local.Size}
	case local.Size == remoteSize:
		return Decision{Mode: ModeSkip}
	default:
		return Decision{Mode: ModeFreshStart}
	}
}
