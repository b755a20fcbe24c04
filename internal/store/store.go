package store

import (
	"context"

	"backend/internal/models"
)

// OrderFilter narrows Query results. Zero-value fields are ignored; an empty
// filter matches everything.
type OrderFilter struct {
	Item       string
	Slot       models.Slot
	CustomerID string
}

// OrderStore is the single persistence abstraction for order lines. Both the
// MongoDB and the in-memory backing satisfy it with the same semantics, so
// the aggregation and transition logic can be tested without a database.
type OrderStore interface {
	// CreateOrders creates one line with status New per cart item with
	// quantity > 0, as one atomic batch. Items with quantity <= 0 are
	// skipped; a ValidationError is returned when no valid item remains.
	CreateOrders(ctx context.Context, customerID, customerName, contact string, slot models.Slot, items []models.CartItem) ([]models.OrderLine, error)

	// GetByID returns the order line or a NotFoundError.
	GetByID(ctx context.Context, id string) (models.OrderLine, error)

	// UpdateStatus moves a line to next after validating the transition
	// against the pipeline. The write is a compare-and-set on the current
	// status, never a blind overwrite: a concurrent winner forces a re-read
	// and the loser fails with an InvalidTransitionError.
	UpdateStatus(ctx context.Context, id string, next models.Status) (models.OrderLine, error)

	// Query returns all matching lines sorted by placement time ascending.
	Query(ctx context.Context, filter OrderFilter) ([]models.OrderLine, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// CustomerStore serves customer profiles and drink preferences. The order
// core only reads from it.
type CustomerStore interface {
	// GetProfile returns the customer's profile, creating it with café
	// defaults on first access.
	GetProfile(ctx context.Context, customerID string) (models.Customer, error)

	// UpdatePreferences overwrites the customer's profile fields and
	// preferences. NotFoundError when the customer has never been seen.
	UpdatePreferences(ctx context.Context, customerID, name, email string, prefs models.Preferences) (models.Customer, error)
}
