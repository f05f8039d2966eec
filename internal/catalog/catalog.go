package catalog

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Entry describes one file to fetch: its source URL and, optionally,
// the SHA-256 digest its contents must match once downloaded.
type Entry struct {
	URL    string `yaml:"url"`
	SHA256 string `yaml:"sha256,omitempty"`
}

// Filename returns the local file name for the entry: the final path
// segment of its URL.
func (e Entry) Filename() string {
	u, err := url.Parse(e.URL)
	if err != nil {
		return path.Base(e.URL)
	}
	return path.Base(u.Path)
}

// HasDigest reports whether the entry carries an expected digest.
func (e Entry) HasDigest() bool {
	return e.SHA256 != ""
}

// Validate checks that the entry has a usable URL and, if present, a
// well-formed lowercase hex SHA-256 digest.
func (e Entry) Validate() error {
	if e.URL == "" {
		return fmt.Errorf("catalog: entry has no url")
	}
	u, err := url.Parse(e.URL)
	if err != nil {
		return fmt.Errorf("catalog: invalid url %q: %w", e.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("catalog: unsupported scheme %q in %q", u.Scheme, e.URL)
	}
	if name := e.Filename(); name == "" || name == "." || name == "/" {
		return fmt.Errorf("catalog: cannot derive file name from %q", e.URL)
	}
	if e.SHA256 != "" {
		if err := checkDigest(e.SHA256); err != nil {
			return fmt.Errorf("catalog: entry %q: %w", e.URL, err)
		}
	}
	return nil
}

// Catalog is an ordered list of entries. Order matters only for
// iteration; entries are independent of each other.
type Catalog []Entry

// Validate checks every entry and rejects duplicate target file names,
// since all files land flat in a single directory.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog: no entries")
	}
	seen := make(map[string]int, len(c))
	for i, e := range c {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		name := e.Filename()
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("catalog: entries %d and %d both target %q", prev, i, name)
		}
		seen[name] = i
	}
	return nil
}

// checkDigest validates the shape of an expected SHA-256 digest.
// The reference form is lowercase hex; uppercase input is accepted
// since comparison is case-insensitive.
func checkDigest(s string) error {
	if len(s) != 64 {
		return fmt.Errorf("sha256 digest must be 64 hex characters, got %d", len(s))
	}
	for _, r := range strings.ToLower(s) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return fmt.Errorf("sha256 digest contains non-hex character %q", r)
		}
	}
	return nil
}
