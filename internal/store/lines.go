package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"backend/internal/models"
)

// buildLines turns a cart submission into persistable order lines. Entries
// with quantity <= 0 are dropped; the remaining entries each become one line
// with status New. Both backings share this so the zero-quantity policy
// cannot drift between them.
func buildLines(customerID, customerName, contact string, slot models.Slot, items []models.CartItem, now time.Time) ([]models.OrderLine, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ValidationError{Msg: "customerId is required"}
	}
	if len(items) == 0 {
		return nil, ValidationError{Msg: "at least one item is required"}
	}

	lines := make([]models.OrderLine, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}

		name := strings.TrimSpace(item.Item)
		if name == "" {
			return nil, ValidationError{Msg: "item name is required"}
		}

		sugar := strings.TrimSpace(item.Sugar)
		if sugar == "" {
			sugar = models.DefaultSugarLevel
		}

		lines = append(lines, models.OrderLine{
			ID:           uuid.NewString(),
			CustomerID:   customerID,
			CustomerName: strings.TrimSpace(customerName),
			Contact:      strings.TrimSpace(contact),
			Item:         name,
			Quantity:     item.Quantity,
			Sugar:        sugar,
			Slot:         slot,
			Status:       models.StatusNew,
			PlacedAt:     now,
		})
	}

	if len(lines) == 0 {
		return nil, ValidationError{Msg: "no item with a positive quantity"}
	}
	return lines, nil
}
