package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mesaYaCore/internal/modules/clients/domain"
)

// MySQLDirectory resolves tagged client references against the clients and
// guest_clients tables.
type MySQLDirectory struct {
	db *sql.DB
}

func NewMySQLDirectory(db *sql.DB) *MySQLDirectory {
	return &MySQLDirectory{db: db}
}

// Resolve returns the display name and notification email for either variant.
func (d *MySQLDirectory) Resolve(ctx context.Context, ref domain.ClientRef) (*domain.Identity, error) {
	var q string
	switch ref.Kind {
	case domain.KindRegistered:
		q = `SELECT name, email FROM clients WHERE id = ?`
	case domain.KindGuest:
		q = `SELECT name, email FROM guest_clients WHERE id = ?`
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownClientKind, ref.Kind)
	}

	var identity domain.Identity
	err := d.db.QueryRowContext(ctx, q, ref.ID).Scan(&identity.DisplayName, &identity.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// FindRegisteredByEmail looks a registered client up by email.
func (d *MySQLDirectory) FindRegisteredByEmail(ctx context.Context, email string) (domain.ClientRef, error) {
	const q = `SELECT id FROM clients WHERE email = ?`
	var id string
	err := d.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(email))).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ClientRef{}, domain.ErrClientNotFound
		}
		return domain.ClientRef{}, err
	}
	return domain.ClientRef{Kind: domain.KindRegistered, ID: id}, nil
}

// EnsureGuest returns an existing guest client with the given email or creates
// one. Used by reservation creation when the booking email is not registered.
func (d *MySQLDirectory) EnsureGuest(ctx context.Context, name, email, phone string) (domain.ClientRef, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	const sel = `SELECT id FROM guest_clients WHERE email = ?`
	var id string
	err := d.db.QueryRowContext(ctx, sel, email).Scan(&id)
	switch {
	case err == nil:
		return domain.ClientRef{Kind: domain.KindGuest, ID: id}, nil
	case errors.Is(err, sql.ErrNoRows):
		// fall through to insert
	default:
		return domain.ClientRef{}, err
	}

	id = uuid.NewString()
	const ins = `INSERT INTO guest_clients (id, name, email, phone) VALUES (?, ?, ?, ?)`
	if _, err := d.db.ExecContext(ctx, ins, id, name, email, phone); err != nil {
		return domain.ClientRef{}, err
	}
	return domain.ClientRef{Kind: domain.KindGuest, ID: id}, nil
}
