package config

import (
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/foundation/normalization"
)

// LogLevelEnv overrides the log level when -v is not given.
const LogLevelEnv = "SITEGEN_LOG_LEVEL"

var logLevels = normalization.NewNormalizer(map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// ResolveLogLevel picks the log level: verbose forces debug, otherwise the
// raw environment value is normalized, defaulting to info.
func ResolveLogLevel(verbose bool, raw string) (slog.Level, error) {
	if verbose {
		return slog.LevelDebug, nil
	}
	lvl, err := logLevels.NormalizeWithError(raw)
	if err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}
