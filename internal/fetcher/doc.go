// Package fetcher implements resumable downloads of catalog entries.
//
// For each entry the fetcher probes the remote size with a HEAD
// request, inspects the local file, and reconciles the two into one of
// three modes:
//
//   - fresh: no local file (or the local file is larger than the
//     remote reports) — download from byte zero
//   - resume: local file smaller than the remote — append from the
//     current size via an open-ended range request
//   - skip: sizes match, or the remote size is unknown and a local
//     file exists — no body transfer at all
//
// Size equality against the remote-reported size is the sole
// completeness signal; digest verification is a separate step (see
// the verify package).
//
// # Failure model
//
// There is no retry loop around the body stream. An interruption
// leaves the partial file at whatever length was flushed, and the next
// run's reconciliation resumes from there. Entries are processed one
// at a time with no shared state, so a failed entry never affects the
// rest of the catalog.
package fetcher
