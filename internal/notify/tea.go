package notify

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and returns it as a tea.Msg.
// It yields nil once ctx is done or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			return ev
		}
	}
}

// Listener keeps one subscription open across update cycles.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to b for the lifetime of ctx.
func NewListener[T any](ctx context.Context, b *Broker[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: b.Subscribe(ctx)}
}

// Next returns a command resolving to the next event. Re-issue it from Update
// after each received event.
func (l *Listener[T]) Next() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}
