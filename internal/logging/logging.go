// Package logging builds the slog loggers used by the marquee binaries.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/plus3/marquee/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a text logger at level. Records go to the rotating file named in cfg,
// or to fallback when no file is configured. The returned closer releases the file.
func New(cfg config.Log, level slog.Level, fallback io.Writer) (*slog.Logger, io.Closer) {
	out := fallback
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // megabytes
			MaxBackups: cfg.MaxBackups,
		}
		out, closer = file, file
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer
}
