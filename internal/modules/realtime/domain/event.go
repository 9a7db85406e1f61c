package domain

import (
	"strings"
	"time"
)

// Actions carried by the `action` discriminator of every published event.
const (
	ActionTableAdded           = "tableAdded"
	ActionTablePositionUpdated = "tablePositionUpdated"
	ActionTableDetailsUpdated  = "tableDetailsUpdated"
	ActionTableDeleted         = "tableDeleted"
	ActionTableStatusUpdated   = "tableStatusUpdated"
	ActionReservationAssigned  = "reservationAssigned"
	ActionOrderCancelled       = "orderCancelled"
	ActionFloorLayoutUpdated   = "floorLayoutUpdated"
	ActionTableAssigned        = "tableAssigned"
)

// Event is the unit broadcast to websocket rooms and mirrored to Kafka.
type Event struct {
	Action     string    `json:"action"`
	Room       string    `json:"room"`
	ResourceID string    `json:"resourceId,omitempty"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewEvent stamps an event with the current server time.
func NewEvent(action, room, resourceID string, data any) *Event {
	return &Event{
		Action:     action,
		Room:       room,
		ResourceID: resourceID,
		Data:       data,
		Timestamp:  time.Now().UTC(),
	}
}

// RestaurantRoom names the channel carrying every change within one restaurant.
func RestaurantRoom(restaurantID string) string {
	return "restaurant_" + strings.TrimSpace(restaurantID)
}

// CustomerRoom names the per-customer channel keyed by notification email.
// The email is lowercased so that subscribe and publish sides always agree.
func CustomerRoom(email string) string {
	return "customer_" + strings.ToLower(strings.TrimSpace(email))
}
