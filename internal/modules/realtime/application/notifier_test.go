package application

import (
	"context"
	"errors"
	"testing"

	"mesaYaCore/internal/modules/realtime/domain"
)

type recordingBroadcaster struct {
	events []*domain.Event
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, evt *domain.Event) {
	r.events = append(r.events, evt)
}

type failingSink struct {
	calls int
}

func (f *failingSink) Publish(context.Context, *domain.Event) error {
	f.calls++
	return errors.New("broker unreachable")
}

func TestNotifierPublishesToBroadcaster(t *testing.T) {
	b := &recordingBroadcaster{}
	n := NewNotifier(b, nil)

	n.Publish(context.Background(), domain.NewEvent(domain.ActionTableAdded, domain.RestaurantRoom("r1"), "t1", nil))

	if len(b.events) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(b.events))
	}
	if b.events[0].Action != domain.ActionTableAdded {
		t.Fatalf("unexpected action %q", b.events[0].Action)
	}
}

func TestNotifierSwallowsSinkFailures(t *testing.T) {
	b := &recordingBroadcaster{}
	sink := &failingSink{}
	n := NewNotifier(b, sink)

	// Must not panic or propagate the sink error.
	n.Publish(context.Background(), domain.NewEvent(domain.ActionOrderCancelled, domain.RestaurantRoom("r1"), "res1", nil))

	if sink.calls != 1 {
		t.Fatalf("expected sink to be attempted once, got %d", sink.calls)
	}
	if len(b.events) != 1 {
		t.Fatal("broadcast should still happen when the sink fails")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Publish(context.Background(), domain.NewEvent(domain.ActionTableDeleted, domain.RestaurantRoom("r1"), "t1", nil))
}
