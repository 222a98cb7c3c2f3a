// Package assets materializes the stylesheet and image tree next to the
// generated pages.
package assets

import (
	_ "embed"
	"io"
	"os"
	"path/filepath"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/output"
)

// Output names relative to the output root.
const (
	StylesheetName = "styles.css"
	ImagesDir      = "images"
	HeroImage      = "images/home_page.jpg"
)

//go:embed default.css
var defaultCSS []byte

// DefaultStylesheet returns the built-in stylesheet.
func DefaultStylesheet() []byte {
	return append([]byte(nil), defaultCSS...)
}

// Result describes what was materialized.
type Result struct {
	// StyleVersion is the content fingerprint of the written stylesheet.
	StyleVersion string
	// DefaultStyles is true when the built-in stylesheet was written.
	DefaultStyles bool
	// Images counts copied image files.
	Images int
	// HeroImage is true when images/home_page.jpg exists in the source.
	HeroImage bool
}

// Materializer copies assets from a source directory into the output.
type Materializer struct {
	sourceDir string
	out       *output.Writer
}

// NewMaterializer returns a materializer from sourceDir into out.
func NewMaterializer(sourceDir string, out *output.Writer) *Materializer {
	return &Materializer{sourceDir: sourceDir, out: out}
}

// Materialize copies the stylesheet and the images tree.
func (m *Materializer) Materialize() (Result, error) {
	var res Result

	version, isDefault, err := m.CopyStyles()
	if err != nil {
		return res, err
	}
	res.StyleVersion = version
	res.DefaultStyles = isDefault

	if res.Images, err = m.CopyImages(); err != nil {
		return res, err
	}
	if m.sourceDir == "" {
		return res, nil
	}
	if _, err := os.Stat(filepath.Join(m.sourceDir, filepath.FromSlash(HeroImage))); err == nil {
		res.HeroImage = true
	}
	return res, nil
}

// CopyStyles writes <source>/styles.css to the output, or the built-in
// stylesheet when the source has none. It returns the stylesheet fingerprint.
func (m *Materializer) CopyStyles() (version string, isDefault bool, err error) {
	var css []byte
	src := filepath.Join(m.sourceDir, StylesheetName)
	if m.sourceDir != "" {
		// #nosec G304 -- path is under the configured source directory
		css, err = os.ReadFile(src)
	}
	if m.sourceDir == "" || err != nil {
		css, isDefault = defaultCSS, true
	}

	dst, err := m.out.Resolve(StylesheetName)
	if err != nil {
		return "", false, fsError(err, "resolve stylesheet path", StylesheetName)
	}
	// Source and output may be the same directory.
	if !isDefault && sameFile(src, dst) {
		return Fingerprint(css), false, nil
	}
	if _, err := m.out.Write(StylesheetName, css); err != nil {
		return "", false, fsError(err, "write stylesheet", dst)
	}
	return Fingerprint(css), isDefault, nil
}

// CopyImages copies <source>/images into the output one level deep:
// top-level files and the files of each direct subdirectory. Deeper
// directories are skipped. A missing source directory is a no-op.
func (m *Materializer) CopyImages() (int, error) {
	if m.sourceDir == "" {
		return 0, nil
	}
	src := filepath.Join(m.sourceDir, ImagesDir)
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return 0, nil
	}
	dst, err := m.out.Resolve(ImagesDir)
	if err != nil {
		return 0, fsError(err, "resolve images path", ImagesDir)
	}
	if sameFile(src, dst) {
		return 0, nil
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fsError(err, "read images directory", src)
	}
	if err := os.MkdirAll(dst, 0o750); err != nil {
		return 0, fsError(err, "create images directory", dst)
	}

	copied := 0
	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if !entry.IsDir() {
			if err := copyFile(from, to); err != nil {
				return copied, fsError(err, "copy image", from)
			}
			copied++
			continue
		}

		subEntries, err := os.ReadDir(from)
		if err != nil {
			return copied, fsError(err, "read images directory", from)
		}
		if err := os.MkdirAll(to, 0o750); err != nil {
			return copied, fsError(err, "create images directory", to)
		}
		for _, sub := range subEntries {
			if sub.IsDir() {
				continue
			}
			if err := copyFile(filepath.Join(from, sub.Name()), filepath.Join(to, sub.Name())); err != nil {
				return copied, fsError(err, "copy image", filepath.Join(from, sub.Name()))
			}
			copied++
		}
	}
	return copied, nil
}

// Fingerprint returns a stable content hash used as the stylesheet version.
func Fingerprint(css []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(css))
}

func fsError(err error, msg, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).
		Fatal().
		WithContext("path", path).
		Build()
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	// #nosec G304 -- src is a directory entry under the source tree
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	// #nosec G304 -- dst mirrors src under the output root
	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
