package selection

import (
	"context"
	"log/slog"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	logger *slog.Logger
	ctx    context.Context
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.DiscardHandler),
		ctx:    context.Background(),
	}
}

// WithLogger sets the structured logger used for debug output.
// Engines are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithContext sets the context notifications are emitted under. Cancelling it
// does not stop delivery.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}
