package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListener_Next(t *testing.T) {
	b := NewBroker[Status]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx, b)
	b.Publish(KindStatus, Warn("file changed on disk"))

	msg := l.Next()()
	ev, ok := msg.(Event[Status])
	require.True(t, ok)
	require.Equal(t, SeverityWarn, ev.Payload.Severity)
}

func TestListenCmd_ClosedChannel(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)

	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestListenCmd_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Nil(t, ListenCmd(ctx, make(chan Event[string]))())
}
