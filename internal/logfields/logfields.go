package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyPageKind   = "page_kind"
	KeyPath       = "path"
	KeySection    = "section"
	KeyTopic      = "topic"
	KeyArticle    = "article"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr    { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr    { return slog.String(KeyStage, name) }
func PageKind(k string) slog.Attr    { return slog.String(KeyPageKind, k) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Section(s string) slog.Attr     { return slog.String(KeySection, s) }
func Topic(s string) slog.Attr       { return slog.String(KeyTopic, s) }
func Article(slug string) slog.Attr  { return slog.String(KeyArticle, slug) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }
func File(f string) slog.Attr        { return slog.String(KeyFile, f) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
