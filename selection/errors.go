package selection

import "errors"

var (
	// ErrNoEffectSink is the panic value (wrapped) raised when ClearSelection has
	// entities to deselect but the host configured no effect sink.
	ErrNoEffectSink = errors.New("selection: no effect sink configured")

	// ErrMissingCapability is the panic value (wrapped) raised by New when a required
	// capability is nil.
	ErrMissingCapability = errors.New("selection: missing required capability")
)
