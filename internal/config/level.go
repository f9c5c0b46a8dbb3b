package config

import (
	"fmt"
	"log/slog"
	"strings"
)

var levels = map[string]slog.Level{
	"DEBUG": slog.LevelDebug,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
}

// ParseLevel converts a level name such as "debug" or "WARN" to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	v, ok := levels[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return v, nil
}
