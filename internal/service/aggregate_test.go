package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/models"
	"backend/internal/service"
	"backend/internal/store"
)

func newStore() *store.MemoryStore {
	mem := store.NewMemory()

	var mu sync.Mutex
	current := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	mem.SetClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Minute)
		return current
	})

	return mem
}

// place creates one line and returns its id.
func place(t *testing.T, mem *store.MemoryStore, customer, item string, quantity int, slot models.Slot) string {
	t.Helper()
	created, err := mem.CreateOrders(context.Background(), customer, customer, "", slot,
		[]models.CartItem{{Item: item, Quantity: quantity}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0].ID
}

// moveTo walks a line forward through the pipeline until it reaches target.
func moveTo(t *testing.T, mem *store.MemoryStore, id string, target models.Status) {
	t.Helper()
	ctx := context.Background()
	for {
		line, err := mem.GetByID(ctx, id)
		require.NoError(t, err)
		if line.Status == target {
			return
		}
		next, ok := line.Status.Next()
		require.True(t, ok, "cannot reach %s from %s", target, line.Status)
		_, err = mem.UpdateStatus(ctx, id, next)
		require.NoError(t, err)
	}
}

func TestAggregatedSumsQuantitiesPerItem(t *testing.T) {
	mem := newStore()
	agg := service.NewAggregator(mem)

	place(t, mem, "tannu", "Espresso", 2, models.SlotMorning)
	place(t, mem, "vivek", "Espresso", 3, models.SlotMorning)

	groups, err := agg.Aggregated(context.Background(), []models.Slot{models.SlotMorning})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Espresso", groups[0].Item)
	assert.Equal(t, 5, groups[0].Quantity)
	assert.Equal(t, models.SlotMorning, groups[0].Slot)
	assert.Equal(t, models.StatusNew, groups[0].Status)
}

func TestAggregatedRollupStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.Status
		want     models.Status
	}{
		{name: "any New wins", statuses: []models.Status{models.StatusProcessing, models.StatusNew}, want: models.StatusNew},
		{name: "Processing before Ready", statuses: []models.Status{models.StatusProcessing, models.StatusReady}, want: models.StatusProcessing},
		{name: "all Ready", statuses: []models.Status{models.StatusReady}, want: models.StatusReady},
		{name: "past Processing shows most advanced", statuses: []models.Status{models.StatusReady, models.StatusCompleted}, want: models.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newStore()
			agg := service.NewAggregator(mem)

			for _, status := range tt.statuses {
				id := place(t, mem, "tannu", "Herbal Tea", 1, models.SlotMorning)
				moveTo(t, mem, id, status)
			}

			groups, err := agg.Aggregated(context.Background(), []models.Slot{models.SlotMorning})
			require.NoError(t, err)
			require.Len(t, groups, 1)
			assert.Equal(t, tt.want, groups[0].Status)
		})
	}
}

func TestAggregatedOrdering(t *testing.T) {
	mem := newStore()
	agg := service.NewAggregator(mem)

	// Morning sees Espresso first, then Matcha; afternoon only Americano.
	place(t, mem, "tannu", "Espresso", 1, models.SlotMorning)
	place(t, mem, "vivek", "Matcha", 1, models.SlotMorning)
	place(t, mem, "priya", "Americano", 1, models.SlotAfternoon)
	place(t, mem, "tannu", "Espresso", 2, models.SlotMorning)

	t.Run("slots come back in requested order", func(t *testing.T) {
		groups, err := agg.Aggregated(context.Background(), []models.Slot{models.SlotAfternoon, models.SlotMorning})
		require.NoError(t, err)
		require.Len(t, groups, 3)
		assert.Equal(t, models.SlotAfternoon, groups[0].Slot)
		assert.Equal(t, "Americano", groups[0].Item)
		assert.Equal(t, "Espresso", groups[1].Item)
		assert.Equal(t, "Matcha", groups[2].Item)
	})

	t.Run("items keep first-seen order within a slot", func(t *testing.T) {
		groups, err := agg.Aggregated(context.Background(), []models.Slot{models.SlotMorning})
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "Espresso", groups[0].Item)
		assert.Equal(t, 3, groups[0].Quantity)
		assert.Equal(t, "Matcha", groups[1].Item)
	})

	t.Run("empty slot list means all slots", func(t *testing.T) {
		groups, err := agg.Aggregated(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, groups, 3)
		assert.Equal(t, models.SlotMorning, groups[0].Slot)
	})
}

func TestAggregatedReflectsStatusUpdates(t *testing.T) {
	mem := newStore()
	agg := service.NewAggregator(mem)
	ctx := context.Background()

	id := place(t, mem, "tannu", "Espresso", 1, models.SlotMorning)

	groups, err := agg.Aggregated(ctx, []models.Slot{models.SlotMorning})
	require.NoError(t, err)
	require.Equal(t, models.StatusNew, groups[0].Status)

	_, err = mem.UpdateStatus(ctx, id, models.StatusProcessing)
	require.NoError(t, err)

	groups, err = agg.Aggregated(ctx, []models.Slot{models.SlotMorning})
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, groups[0].Status)
}

func TestDetail(t *testing.T) {
	mem := newStore()
	agg := service.NewAggregator(mem)
	ctx := context.Background()

	first := place(t, mem, "tannu", "Tea", 1, models.SlotMorning)
	place(t, mem, "vivek", "Espresso", 1, models.SlotMorning)
	second := place(t, mem, "priya", "Tea", 2, models.SlotMorning)
	place(t, mem, "tannu", "Tea", 1, models.SlotAfternoon)

	t.Run("oldest placed first, scoped to item and slot", func(t *testing.T) {
		lines, err := agg.Detail(ctx, "Tea", "morning")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, first, lines[0].ID)
		assert.Equal(t, second, lines[1].ID)
		assert.True(t, lines[0].PlacedAt.Before(lines[1].PlacedAt))
	})

	t.Run("slot is matched case-insensitively", func(t *testing.T) {
		lines, err := agg.Detail(ctx, "Tea", "Morning")
		require.NoError(t, err)
		assert.Len(t, lines, 2)
	})

	t.Run("blank item", func(t *testing.T) {
		_, err := agg.Detail(ctx, "  ", "morning")
		var validationErr store.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, err := agg.Detail(ctx, "Tea", "midnight")
		var validationErr store.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}
