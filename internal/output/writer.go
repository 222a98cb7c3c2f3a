// Package output writes build artifacts below the output root.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes files relative to a root directory. Paths are slash
// separated and must stay under the root.
type Writer struct {
	root string
}

// NewWriter returns a writer rooted at root.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Root returns the output root.
func (w *Writer) Root() string { return w.root }

// Resolve maps a slash-separated relative path to a file path under the
// root, rejecting absolute paths and traversal.
func (w *Writer) Resolve(relativePath string) (string, error) {
	if w.root == "" {
		return "", errors.New("output directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q must be relative to the output directory", relativePath)
	}

	fullPath := filepath.Join(w.root, cleanRel)
	rel, err := filepath.Rel(w.root, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("output path %q escapes the output directory", relativePath)
	}
	return fullPath, nil
}

// Write creates parent directories and replaces the file at relativePath.
// It returns the full path written.
func (w *Writer) Write(relativePath string, content []byte) (string, error) {
	fullPath, err := w.Resolve(relativePath)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	// #nosec G306 -- published site files are world readable
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return fullPath, nil
}
