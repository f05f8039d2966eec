package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// blockSize is the read size for streaming the file through the hash,
// bounding memory regardless of file size.
const blockSize = 1 << 20

// Result classifies the outcome of verifying one file.
type Result int

const (
	// Match means the computed digest equals the expected one.
	Match Result = iota

	// Mismatch means the file's content does not match its expected
	// digest. The file is never deleted or re-downloaded here;
	// recovery is an explicit operator action.
	Mismatch

	// NoDigestRegistered means the catalog carries no expected digest
	// for this file. Informational, not a failure.
	NoDigestRegistered

	// FileMissing means the target file does not exist.
	FileMissing
)

func (r Result) String() string {
	switch r {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case NoDigestRegistered:
		return "no digest registered"
	case FileMissing:
		return "file missing"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Outcome is the result of verifying one file, including the digest
// actually computed (empty when no hashing took place).
type Outcome struct {
	Result Result

	// Actual is the computed SHA-256 digest in lowercase hex. Set for
	// Match and Mismatch.
	Actual string
}

// File streams the file at path through SHA-256 and compares the
// digest against expected, case-insensitively. The expected reference
// form is lowercase hex; pass "" when the catalog has no digest for
// this file.
//
// The algorithm is pinned to SHA-256: pre-recorded catalog digests
// were computed with it, and substituting another hash would make
// every one of them unverifiable.
func File(path, expected string) (Outcome, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Outcome{Result: FileMissing}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if expected == "" {
		return Outcome{Result: NoDigestRegistered}, nil
	}

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, blockSize)); err != nil {
		return Outcome{}, fmt.Errorf("hash %s: %w", path, err)
	}

	actual := hex.EncodeToString(h.Sum(nil))
	if actual != strings.ToLower(expected) {
		return Outcome{Result: Mismatch, Actual: actual}, nil
	}
	return Outcome{Result: Match, Actual: actual}, nil
}
