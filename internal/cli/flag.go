package cli

import (
	"log/slog"

	"github.com/plus3/marquee/internal/config"
)

// logLevelFlag is a pflag.Value holding a slog level.
type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	v, err := config.ParseLevel(value)
	if err != nil {
		return err
	}
	l.value = v
	return nil
}

func (l *logLevelFlag) Type() string {
	return "level"
}
