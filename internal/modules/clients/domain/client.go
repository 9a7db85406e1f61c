package domain

import "errors"

// ClientKind tags the two client identity variants; a reservation always
// carries exactly one of them.
type ClientKind string

const (
	KindRegistered ClientKind = "registered"
	KindGuest      ClientKind = "guest"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrUnknownClientKind = errors.New("unknown client kind")
)

// ClientRef is the tagged reference stored on reservations. Consumers resolve
// it through the Directory rather than branching on record shape.
type ClientRef struct {
	Kind ClientKind `json:"kind"`
	ID   string     `json:"id"`
}

// Valid reports whether the reference carries a known kind and an identifier.
func (r ClientRef) Valid() bool {
	return (r.Kind == KindRegistered || r.Kind == KindGuest) && r.ID != ""
}

// Identity is the resolved projection the core needs: a display name for
// event payloads and an email for customer-scoped notification rooms.
type Identity struct {
	DisplayName string
	Email       string
}
