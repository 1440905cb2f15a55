package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventTicketStatusChanged, func(_ context.Context, e Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: 5})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].TicketID)
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}
