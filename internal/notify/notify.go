// Package notify delivers best-effort order events to the chef dashboard.
// Delivery failures are logged and never surfaced to the ordering flow.
package notify

import (
	"context"
	"log/slog"
	"time"

	"backend/internal/models"
)

type Event string

const (
	EventOrderPlaced   Event = "order.placed"
	EventStatusChanged Event = "order.status_changed"
)

// Notifier is the fire-and-forget sink invoked on order creation and status
// transitions. Implementations must not block the caller on failure and must
// not return errors.
type Notifier interface {
	OrderPlaced(ctx context.Context, lines []models.OrderLine)
	StatusChanged(ctx context.Context, line models.OrderLine)
}

// message is the JSON envelope published for every event.
type message struct {
	Event  Event              `json:"event"`
	At     time.Time          `json:"at"`
	Orders []models.OrderLine `json:"orders"`
}

// LogNotifier only logs events. It stands in for a real push channel in
// tests and when no Redis address is configured.
type LogNotifier struct{}

func NewLog() LogNotifier {
	return LogNotifier{}
}

func (LogNotifier) OrderPlaced(ctx context.Context, lines []models.OrderLine) {
	slog.InfoContext(ctx, "order placed", "event", EventOrderPlaced, "lines", len(lines))
}

func (LogNotifier) StatusChanged(ctx context.Context, line models.OrderLine) {
	slog.InfoContext(ctx, "order status changed",
		"event", EventStatusChanged, "order_id", line.ID, "status", line.Status)
}
