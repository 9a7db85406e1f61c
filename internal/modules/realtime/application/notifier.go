package application

import (
	"context"
	"log/slog"

	"mesaYaCore/internal/modules/realtime/application/port"
	"mesaYaCore/internal/modules/realtime/domain"
)

// Notifier publishes domain events to the websocket hub and, when a sink is
// configured, to Kafka. Delivery is best-effort: failures are logged and never
// surface to the operation that produced the event.
type Notifier struct {
	broadcaster port.Broadcaster
	sink        port.EventSink
}

func NewNotifier(b port.Broadcaster, sink port.EventSink) *Notifier {
	return &Notifier{broadcaster: b, sink: sink}
}

// Publish delivers the event to every transport. Safe to call on a nil
// receiver so wiring can omit the notifier entirely in tests.
func (n *Notifier) Publish(ctx context.Context, evt *domain.Event) {
	if n == nil || evt == nil {
		return
	}
	if n.broadcaster != nil {
		n.broadcaster.Broadcast(ctx, evt)
	}
	if n.sink != nil {
		if err := n.sink.Publish(ctx, evt); err != nil {
			slog.Warn("event sink publish failed",
				slog.String("action", evt.Action),
				slog.String("room", evt.Room),
				slog.Any("error", err),
			)
		}
	}
}
