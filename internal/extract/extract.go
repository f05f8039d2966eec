package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thelivingdead/dsfetch/internal/progress"
)

// Dir extracts every .zip archive found directly in src into dest,
// one archive at a time. dest is created if needed. Returns the number
// of archives extracted.
func Dir(src, dest string, reporter *progress.Reporter) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("read source dir: %w", err)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return 0, fmt.Errorf("create destination dir: %w", err)
	}

	extracted := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".zip") {
			continue
		}
		reporter.Statusf("extracting %s", e.Name())
		if err := Archive(filepath.Join(src, e.Name()), dest); err != nil {
			return extracted, fmt.Errorf("extract %s: %w", e.Name(), err)
		}
		extracted++
	}

	return extracted, nil
}

// Archive extracts a single zip archive into dest.
func Archive(path, dest string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

// extractFile writes one archive member under dest, refusing paths
// that would escape it.
func extractFile(f *zip.File, dest string) error {
	target := filepath.Join(dest, f.Name)

	// Zip-slip guard: the joined path must stay inside dest.
	if rel, err := filepath.Rel(dest, target); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("archive member %q escapes destination", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	_, err = io.Copy(out, rc)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
