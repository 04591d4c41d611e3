package event_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/changenotify/core/event"
)

type recordChanged struct {
	ID string
}

type other struct{}

func TestProcessor_DeliversToTypedHandler(t *testing.T) {
	t.Parallel()

	transport := event.NewChannelTransport(4)
	publisher := event.NewPublisher(transport)

	var (
		mu  sync.Mutex
		got []string
		ids []string
	)
	done := make(chan struct{}, 2)

	processor := event.NewProcessor(
		event.WithEventSource(transport),
		event.WithHandler(event.NewHandlerFunc(func(ctx context.Context, evt recordChanged) error {
			mu.Lock()
			got = append(got, evt.ID)
			ids = append(ids, event.EventID(ctx))
			mu.Unlock()
			done <- struct{}{}
			return nil
		})),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = processor.Start(ctx) }()

	id1, err := publisher.Publish(ctx, recordChanged{ID: "a"})
	require.NoError(t, err)
	_, err = publisher.Publish(ctx, &recordChanged{ID: "b"})
	require.NoError(t, err)

	for range 2 {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler not called")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b"}, got)
	assert.Contains(t, ids, id1)

	require.NoError(t, processor.Stop())
	assert.Equal(t, int64(2), processor.Stats().EventsProcessed)
}

func TestProcessor_ContainsFailuresAndPanics(t *testing.T) {
	t.Parallel()

	transport := event.NewChannelTransport(4)
	processor := event.NewProcessor(
		event.WithEventSource(transport),
		event.WithHandler(
			event.NewHandlerFunc(func(context.Context, recordChanged) error { return errors.New("boom") }),
			event.NewHandlerFunc(func(context.Context, recordChanged) error { panic("bad") }),
		),
	)

	publisher := event.NewPublisher(transport)
	_, err := publisher.Publish(context.Background(), recordChanged{ID: "x"})
	require.NoError(t, err)
	_, err = publisher.Publish(context.Background(), other{})
	require.NoError(t, err)
	require.NoError(t, transport.Close())

	// Source closes after draining, so Start returns nil.
	require.NoError(t, processor.Start(context.Background()))
	require.NoError(t, processor.Stop())

	stats := processor.Stats()
	assert.Equal(t, int64(2), stats.EventsFailed)
	assert.Equal(t, int64(0), stats.EventsProcessed)
	assert.False(t, stats.IsRunning)
}

func TestProcessor_StartValidation(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, event.NewProcessor().Start(context.Background()), event.ErrEventSourceNil)

	transport := event.NewChannelTransport(1)
	assert.ErrorIs(t, event.NewProcessor(event.WithEventSource(transport)).Start(context.Background()), event.ErrNoHandlers)

	assert.ErrorIs(t, event.NewProcessor().Stop(), event.ErrProcessorNotStarted)
}

func TestProcessor_Healthcheck(t *testing.T) {
	t.Parallel()

	transport := event.NewChannelTransport(1)
	processor := event.NewProcessor(
		event.WithEventSource(transport),
		event.WithHandler(event.NewHandlerFunc(func(context.Context, recordChanged) error { return nil })),
	)
	assert.ErrorIs(t, processor.Healthcheck(context.Background()), event.ErrHealthcheckFailed)

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan error, 1)
	go func() { started <- processor.Start(ctx) }()

	assert.Eventually(t, func() bool { return processor.Healthcheck(ctx) == nil }, time.Second, 10*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-started, context.Canceled)
}

func TestChannelTransport_ClosedAndBackpressure(t *testing.T) {
	t.Parallel()

	transport := event.NewChannelTransport(1)
	require.NoError(t, transport.Dispatch(context.Background(), event.NewEvent(recordChanged{})))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, transport.Dispatch(ctx, event.NewEvent(recordChanged{})), context.DeadlineExceeded)

	require.NoError(t, transport.Close())
	require.NoError(t, transport.Close())
	assert.ErrorIs(t, transport.Dispatch(context.Background(), event.NewEvent(recordChanged{})), event.ErrTransportClosed)
}

func TestNewEvent_Name(t *testing.T) {
	t.Parallel()

	evt := event.NewEvent(&recordChanged{ID: "1"})
	assert.Equal(t, "recordChanged", evt.Name)
	assert.NotEmpty(t, evt.ID)
	assert.False(t, evt.CreatedAt.IsZero())
}
