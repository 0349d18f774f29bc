package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd blocks for one event from ch and delivers it to the update loop.
// The command yields nil after ctx ends or ch closes, so nothing is re-queued.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		if ev, ok := next(ctx, ch); ok {
			return ev
		}
		return nil
	}
}

func next[T any](ctx context.Context, ch <-chan Event[T]) (Event[T], bool) {
	select {
	case ev, ok := <-ch:
		return ev, ok
	case <-ctx.Done():
		return Event[T]{}, false
	}
}

// ContinuousListener holds a single subscription for a model. The model
// calls Listen once from Init and again each time it handles an event.
type ContinuousListener[T any] struct {
	ctx    context.Context
	events <-chan Event[T]
}

// NewContinuousListener subscribes to src until ctx is cancelled.
func NewContinuousListener[T any](ctx context.Context, src Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, events: src.Subscribe(ctx)}
}

// Listen returns the command waiting for the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.events)
}
