package port

import (
	"context"

	"mesaYaCore/internal/modules/realtime/domain"
)

// Broadcaster fans an event out to the websocket clients subscribed to its room.
type Broadcaster interface {
	Broadcast(ctx context.Context, evt *domain.Event)
}

// EventSink mirrors events to an external transport (Kafka) for sibling services.
type EventSink interface {
	Publish(ctx context.Context, evt *domain.Event) error
}
