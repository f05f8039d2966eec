// Package verify checks downloaded files against their catalog
// digests.
//
// Files are streamed through SHA-256 in fixed-size blocks, so memory
// use stays constant for arbitrarily large files. Comparison against
// the expected digest is case-insensitive; the reference form is
// lowercase hex.
//
// A digest check is independent of and subsequent to size-based
// completeness: a file can look complete to the fetcher yet fail
// verification here, and that is reported rather than silently
// accepted. Verification never deletes or re-downloads anything.
package verify
