package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vendimax/backend-vendi/internal/events"
)

type captureNotifier struct {
	events []events.Event
	err    error
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return c.err
}

func TestEmitFansOut(t *testing.T) {
	first := &captureNotifier{}
	second := &captureNotifier{}
	bus := &events.Bus{Notifiers: []events.Notifier{first, second, nil}}

	ev, err := bus.Emit(context.Background(), events.TopicPaymentAccepted, map[string]any{"changeAmount": 200})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, ev.ID)
	require.Equal(t, events.TopicPaymentAccepted, ev.Topic)
	require.False(t, ev.OccurredAt.IsZero())

	var payload map[string]int
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	require.Equal(t, 200, payload["changeAmount"])

	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
}

func TestEmitRequiresTopic(t *testing.T) {
	bus := &events.Bus{}
	_, err := bus.Emit(context.Background(), "  ", nil)
	require.Error(t, err)
}

func TestEmitJoinsNotifierErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := &captureNotifier{err: boom}
	ok := &captureNotifier{}
	bus := &events.Bus{Notifiers: []events.Notifier{failing, ok}}

	_, err := bus.Emit(context.Background(), events.TopicPaymentRejected, nil)
	require.ErrorIs(t, err, boom)
	// Later notifiers still run.
	require.Len(t, ok.events, 1)
}

func TestEmitRejectsInvalidRawPayload(t *testing.T) {
	bus := &events.Bus{}
	_, err := bus.Emit(context.Background(), events.TopicPaymentAccepted, json.RawMessage("{not json"))
	require.Error(t, err)
}
