package eventbus

import (
	"context"
	"errors"
	"testing"
)

func TestBusPublishBroadcast(t *testing.T) {
	bus := NewBus()
	calledA := false
	calledB := false

	bus.Subscribe(ChatEventMessageAppended, func(ctx context.Context, event ChatEvent) error {
		calledA = true
		return nil
	})
	bus.Subscribe(ChatEventMessageAppended, func(ctx context.Context, event ChatEvent) error {
		calledB = true
		return nil
	})

	if err := bus.Publish(context.Background(), ChatEvent{Type: ChatEventMessageAppended}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !calledA || !calledB {
		t.Fatalf("expected handlers to be called")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	called := false
	unsubscribe := bus.Subscribe(ChatEventPreviewUpdated, func(ctx context.Context, event ChatEvent) error {
		called = true
		return nil
	})
	unsubscribe()

	if err := bus.Publish(context.Background(), ChatEvent{Type: ChatEventPreviewUpdated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("expected handler to be unsubscribed")
	}
}

func TestBusPublishJoinErrors(t *testing.T) {
	bus := NewBus()
	errA := errors.New("a")
	errB := errors.New("b")

	bus.Subscribe(ChatEventHistorySelected, func(ctx context.Context, event ChatEvent) error {
		return errA
	})
	bus.Subscribe(ChatEventHistorySelected, func(ctx context.Context, event ChatEvent) error {
		return errB
	})

	err := bus.Publish(context.Background(), ChatEvent{Type: ChatEventHistorySelected})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	if err := bus.Publish(context.Background(), ChatEvent{Type: ChatEventMessageAppended}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
