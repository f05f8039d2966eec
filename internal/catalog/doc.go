// Package catalog defines the list of files the fetcher manages.
//
// A catalog is an ordered list of (URL, optional SHA-256) pairs,
// loaded once at startup as part of the configuration and treated as
// immutable afterwards. Each entry maps to a single file in the target
// directory, named by the final path segment of its URL.
//
// Entries without a digest are valid; validation reports them as
// having no registered digest instead of failing.
package catalog
