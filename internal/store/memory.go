package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"backend/internal/models"
)

// MemoryStore is the in-memory backing used by tests and DB_MODE=memory dev
// runs. A single mutex makes every operation atomic, which gives the same
// compare-and-set guarantees as the conditional MongoDB writes.
type MemoryStore struct {
	mu        sync.RWMutex
	orders    map[string]models.OrderLine
	seq       map[string]int // insertion index, placedAt tiebreaker
	nextSeq   int
	customers map[string]models.Customer
	now       func() time.Time
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		orders:    make(map[string]models.OrderLine),
		seq:       make(map[string]int),
		customers: make(map[string]models.Customer),
		now:       time.Now,
	}
}

// SetClock replaces the store's clock; tests use it to make placement times
// deterministic.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryStore) CreateOrders(ctx context.Context, customerID, customerName, contact string, slot models.Slot, items []models.CartItem) ([]models.OrderLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines, err := buildLines(customerID, customerName, contact, slot, items, m.now().UTC())
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		m.orders[line.ID] = line
		m.seq[line.ID] = m.nextSeq
		m.nextSeq++
	}
	return lines, nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (models.OrderLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	line, ok := m.orders[id]
	if !ok {
		return models.OrderLine{}, NotFoundError{ID: id}
	}
	return line, nil
}

func (m *MemoryStore) UpdateStatus(ctx context.Context, id string, next models.Status) (models.OrderLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	line, ok := m.orders[id]
	if !ok {
		return models.OrderLine{}, NotFoundError{ID: id}
	}
	if !models.CanTransition(line.Status, next) {
		return models.OrderLine{}, InvalidTransitionError{From: line.Status, To: next}
	}

	line.Status = next
	m.orders[id] = line
	return line, nil
}

func (m *MemoryStore) Query(ctx context.Context, filter OrderFilter) ([]models.OrderLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var lines []models.OrderLine
	for _, line := range m.orders {
		if filter.Item != "" && line.Item != filter.Item {
			continue
		}
		if filter.Slot != "" && line.Slot != filter.Slot {
			continue
		}
		if filter.CustomerID != "" && line.CustomerID != filter.CustomerID {
			continue
		}
		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].PlacedAt.Equal(lines[j].PlacedAt) {
			return lines[i].PlacedAt.Before(lines[j].PlacedAt)
		}
		return m.seq[lines[i].ID] < m.seq[lines[j].ID]
	})
	return lines, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) GetProfile(ctx context.Context, customerID string) (models.Customer, error) {
	if strings.TrimSpace(customerID) == "" {
		return models.Customer{}, ValidationError{Msg: "customerId is required"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if customer, ok := m.customers[customerID]; ok {
		return customer, nil
	}

	customer := models.DefaultCustomer(customerID)
	now := m.now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	m.customers[customerID] = customer
	return customer, nil
}

func (m *MemoryStore) UpdatePreferences(ctx context.Context, customerID, name, email string, prefs models.Preferences) (models.Customer, error) {
	if err := validatePreferences(customerID, name, email, prefs); err != nil {
		return models.Customer{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	customer, ok := m.customers[customerID]
	if !ok {
		return models.Customer{}, NotFoundError{ID: customerID}
	}

	customer.Name = strings.TrimSpace(name)
	customer.Email = strings.TrimSpace(email)
	customer.Preferences = prefs
	customer.UpdatedAt = m.now().UTC()
	m.customers[customerID] = customer
	return customer, nil
}
