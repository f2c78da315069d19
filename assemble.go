package web2pdf

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// defaultFilename is used when the source URL has no usable path segment.
const defaultFilename = "document.pdf"

// assemble reads the temporary PDF artifact fully into memory, rejects
// zero-byte output, and derives a download filename from the source URL.
// The artifact is deleted exactly once, on every exit path; a deletion
// failure is logged, never escalated.
func (s *Service) assemble(path string, source *url.URL) (*GeneratedDocument, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to clean up temporary artifact", "path", path, "error", err)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadDocument, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyPDF
	}

	return &GeneratedDocument{
		Data:     data,
		Filename: deriveFilename(source),
	}, nil
}

// deriveFilename builds a download filename from the last non-empty path
// segment of the source URL, falling back to a generic name. Characters
// unsafe inside a Content-Disposition header are stripped.
func deriveFilename(source *url.URL) string {
	if source == nil {
		return defaultFilename
	}

	segment := ""
	for _, part := range strings.Split(source.Path, "/") {
		if part != "" {
			segment = part
		}
	}
	segment = sanitizeFilename(segment)
	if segment == "" {
		return defaultFilename
	}

	segment = strings.TrimSuffix(segment, ".pdf")
	if segment == "" {
		return defaultFilename
	}
	return segment + ".pdf"
}

// sanitizeFilename drops quotes, control characters, and path
// separators that could break the disposition header or the saved path.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return -1
		case r == '"', r == '\\', r == '/':
			return -1
		default:
			return r
		}
	}, name)
}
