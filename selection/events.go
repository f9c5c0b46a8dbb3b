package selection

import (
	"context"
	"slices"
	"strconv"

	"github.com/maniartech/signals"
)

// Subscription is returned by the On* methods of an Engine.
type Subscription struct {
	cancel func()
}

// Cancel unregisters the listener. Calling it more than once is harmless.
// It must not be called from inside a listener of the same notification.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

type listener[P any] struct {
	key string
	fn  signals.SignalListener[P]
}

// notifier fans a payload out to its listeners in registration order.
// The signal swaps the last listener into a removed slot, so after a removal
// it is rebuilt from listeners, which keeps that order.
type notifier[P any] struct {
	signal    *signals.SyncSignal[P]
	listeners []listener[P]
	nextID    int
}

func newNotifier[P any]() *notifier[P] {
	return &notifier[P]{
		signal: signals.NewSync[P](),
	}
}

func (n *notifier[P]) subscribe(fn func(P)) Subscription {
	n.nextID++
	l := listener[P]{key: strconv.Itoa(n.nextID)}
	l.fn = func(_ context.Context, payload P) {
		fn(payload)
	}
	n.listeners = append(n.listeners, l)
	n.signal.AddListener(l.fn, l.key)

	return Subscription{
		cancel: func() {
			n.unsubscribe(l.key)
		},
	}
}

func (n *notifier[P]) unsubscribe(key string) {
	i := slices.IndexFunc(n.listeners, func(l listener[P]) bool {
		return l.key == key
	})
	if i < 0 {
		return
	}
	n.listeners = slices.Delete(n.listeners, i, i+1)

	n.signal.Reset()
	for _, l := range n.listeners {
		n.signal.AddListener(l.fn, l.key)
	}
}

// emit delivers payload to every listener. Cancellation of ctx is ignored.
func (n *notifier[P]) emit(ctx context.Context, payload P) {
	n.signal.Emit(context.WithoutCancel(ctx), payload)
}
