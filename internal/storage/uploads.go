package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UploadStore writes product images to local disk and hands back publicly
// resolvable URLs under BaseURL.
type UploadStore struct {
	Dir     string
	BaseURL string

	now func() time.Time
}

func NewUploadStore(dir, baseURL string) *UploadStore {
	return &UploadStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

var nonWord = regexp.MustCompile(`[^\w\-.]`)
var whitespace = regexp.MustCompile(`\s+`)

// SanitizeFilename strips diacritics, lower-cases, turns whitespace into
// hyphens and drops anything that is not a word character, hyphen or dot.
func SanitizeFilename(name string) string {
	stripped, _, err := transform.String(transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	), name)
	if err != nil {
		stripped = name
	}
	stripped = strings.ToLower(stripped)
	stripped = whitespace.ReplaceAllString(stripped, "-")
	return nonWord.ReplaceAllString(stripped, "")
}

// Save stores the upload under a timestamp-prefixed sanitized name and
// returns its public URL.
func (s *UploadStore) Save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s", s.now().UnixMilli(), SanitizeFilename(filename))
	path := filepath.Join(s.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return s.BaseURL + "/" + name, nil
}
