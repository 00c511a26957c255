package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"quotedesk_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublish_DeliversToSubscribedHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	received := make(chan Event, 1)

	bus.Subscribe("leads.created", HandlerFunc(func(ctx context.Context, event Event) error {
		received <- event
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "leads.created"})

	select {
	case event := <-received:
		if event.EventName() != "leads.created" {
			t.Fatalf("unexpected event %q", event.EventName())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestPublish_IgnoresUnsubscribedEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	received := make(chan Event, 1)

	bus.Subscribe("leads.created", HandlerFunc(func(ctx context.Context, event Event) error {
		received <- event
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "leads.status_changed"})

	select {
	case <-received:
		t.Fatal("handler invoked for an event it did not subscribe to")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPublishSync_CombinesHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	wantErr := errors.New("handler failed")

	bus.Subscribe("leads.created", HandlerFunc(func(ctx context.Context, event Event) error {
		return wantErr
	}))
	bus.Subscribe("leads.created", HandlerFunc(func(ctx context.Context, event Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "leads.created"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected combined error containing handler failure, got %v", err)
	}
}

func TestPublishSync_NoSubscribersIsANoOp(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "nobody.listens"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
