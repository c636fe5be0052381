package uploads

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// PDFs bypass object storage and land in a fixed public directory, the
// same layout the static host serves from.

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips the path and removes everything outside the
// alphanumeric/dot/dash/underscore subset.
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	return filenameSanitizer.ReplaceAllString(base, "")
}

// PDFStore writes PDF assets under Dir and addresses them below
// BaseURL + "/pdfs/".
type PDFStore struct {
	Dir     string
	BaseURL string
}

func NewPDFStore(dir, baseURL string) *PDFStore {
	return &PDFStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

// Save writes the file and returns its public URL along with the
// sanitized filename.
func (p *PDFStore) Save(filename string, content io.Reader) (url string, sanitized string, err error) {
	sanitized = SanitizeFilename(filename)
	if sanitized == "" {
		return "", "", fmt.Errorf("filename %q empty after sanitizing", filename)
	}

	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return "", sanitized, fmt.Errorf("failed to create upload directory: %w", err)
	}

	target := filepath.Join(p.Dir, sanitized)
	f, err := os.Create(target)
	if err != nil {
		return "", sanitized, fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", sanitized, fmt.Errorf("failed to write %s: %w", target, err)
	}

	return p.BaseURL + "/pdfs/" + sanitized, sanitized, nil
}

// FallbackURL is the best-effort path handed back when the upload
// target is unavailable. It assumes the file gets placed externally;
// callers must not treat it as verified to exist.
func (p *PDFStore) FallbackURL(filename string) string {
	sanitized := SanitizeFilename(filename)
	slog.Warn("PDF upload unavailable, returning assumed local path", "filename", sanitized)
	return "/pdfs/" + sanitized
}
