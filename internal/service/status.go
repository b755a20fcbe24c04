package service

import (
	"context"

	"backend/internal/models"
	"backend/internal/store"
)

// Transitioner applies status changes to individual order lines. Both entry
// points go through the store's compare-and-set update, so the legal
// transition table can never be bypassed by a raw write.
type Transitioner struct {
	orders store.OrderStore
}

func NewTransitioner(orders store.OrderStore) *Transitioner {
	return &Transitioner{orders: orders}
}

// Advance moves a line to the next pipeline state. The next state is
// computed server-side from the current one, which is what the chef app's
// single action button triggers; there is no way to request an invalid jump.
func (t *Transitioner) Advance(ctx context.Context, id string) (models.OrderLine, error) {
	line, err := t.orders.GetByID(ctx, id)
	if err != nil {
		return models.OrderLine{}, err
	}

	next, ok := line.Status.Next()
	if !ok {
		return models.OrderLine{}, store.InvalidTransitionError{From: line.Status}
	}

	return t.orders.UpdateStatus(ctx, id, next)
}

// Set applies an explicitly requested target status, for interfaces that
// send one. The target is parsed and then validated against the same
// transition table as Advance.
func (t *Transitioner) Set(ctx context.Context, id, target string) (models.OrderLine, error) {
	status, err := models.ToStatus(target)
	if err != nil {
		return models.OrderLine{}, store.ValidationError{Msg: "newStatus must be one of New, Processing, Ready, Completed"}
	}

	return t.orders.UpdateStatus(ctx, id, status)
}
