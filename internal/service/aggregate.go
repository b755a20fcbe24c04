package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"backend/internal/models"
	"backend/internal/store"
)

// Aggregator derives the chef dashboard view from the order store. Every
// call recomputes from live records, so a status update is visible on the
// very next read.
type Aggregator struct {
	orders store.OrderStore
}

func NewAggregator(orders store.OrderStore) *Aggregator {
	return &Aggregator{orders: orders}
}

// Aggregated partitions the requested slots' order lines by item and sums
// quantities per partition. Groups come back in the order slots were
// requested, then by first-seen item within each slot, which is stable for a
// fixed snapshot. An empty slot list means all slots.
func (a *Aggregator) Aggregated(ctx context.Context, slots []models.Slot) ([]models.AggregatedGroup, error) {
	if len(slots) == 0 {
		slots = models.Slots()
	}

	groups := make([]models.AggregatedGroup, 0)
	for _, slot := range slots {
		lines, err := a.orders.Query(ctx, store.OrderFilter{Slot: slot})
		if err != nil {
			return nil, fmt.Errorf("query slot %q: %w", slot, err)
		}
		groups = append(groups, aggregateSlot(slot, lines)...)
	}
	return groups, nil
}

// Detail returns the preparation queue for one (item, slot) group, oldest
// placed first. The kitchen works the queue front to back.
func (a *Aggregator) Detail(ctx context.Context, item, timeSlot string) ([]models.OrderLine, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, store.ValidationError{Msg: "item is required"}
	}

	slot, err := models.ToSlot(timeSlot)
	if err != nil {
		return nil, store.ValidationError{Msg: "timeSlot must be one of morning, afternoon"}
	}

	lines, err := a.orders.Query(ctx, store.OrderFilter{Item: item, Slot: slot})
	if err != nil {
		return nil, fmt.Errorf("query detail: %w", err)
	}
	return lines, nil
}

// aggregateSlot groups one slot's lines by item, preserving first-seen item
// order. Lines arrive sorted by placement time, so first-seen is the oldest
// order for that item.
func aggregateSlot(slot models.Slot, lines []models.OrderLine) []models.AggregatedGroup {
	byItem := lo.GroupBy(lines, func(line models.OrderLine) string {
		return line.Item
	})

	seen := make(map[string]bool, len(byItem))
	groups := make([]models.AggregatedGroup, 0, len(byItem))
	for _, line := range lines {
		if seen[line.Item] {
			continue
		}
		seen[line.Item] = true

		itemLines := byItem[line.Item]
		groups = append(groups, models.AggregatedGroup{
			Item: line.Item,
			Slot: slot,
			Quantity: lo.SumBy(itemLines, func(l models.OrderLine) int {
				return l.Quantity
			}),
			Status: rollupStatus(itemLines),
		})
	}
	return groups
}

// statusRank orders statuses by pipeline progress.
var statusRank = map[models.Status]int{
	models.StatusNew:        0,
	models.StatusProcessing: 1,
	models.StatusReady:      2,
	models.StatusCompleted:  3,
}

// rollupStatus derives a group's status from its lines: New wins over
// everything, then Processing; once every line is past Processing the group
// shows the most-advanced remaining status.
func rollupStatus(lines []models.OrderLine) models.Status {
	hasStatus := func(s models.Status) bool {
		return lo.ContainsBy(lines, func(l models.OrderLine) bool {
			return l.Status == s
		})
	}

	switch {
	case len(lines) == 0:
		return models.StatusNew
	case hasStatus(models.StatusNew):
		return models.StatusNew
	case hasStatus(models.StatusProcessing):
		return models.StatusProcessing
	}

	most := lo.MaxBy(lines, func(a, b models.OrderLine) bool {
		return statusRank[a.Status] > statusRank[b.Status]
	})
	return most.Status
}
