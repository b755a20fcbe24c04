package models

import (
	"errors"
	"strings"
	"time"
)

// Status is the preparation state of a single order line.
type Status string

const (
	StatusNew        Status = "New"
	StatusProcessing Status = "Processing"
	StatusReady      Status = "Ready"
	StatusCompleted  Status = "Completed"
)

// nextStatus is the only legal forward path. Anything not in this map
// (backward, skipping, leaving a terminal state) is an invalid transition.
var nextStatus = map[Status]Status{
	StatusNew:        StatusProcessing,
	StatusProcessing: StatusReady,
	StatusReady:      StatusCompleted,
}

// Next returns the following pipeline state. ok is false for terminal states.
func (s Status) Next() (Status, bool) {
	next, ok := nextStatus[s]
	return next, ok
}

// Terminal reports whether the status has no further transitions.
func (s Status) Terminal() bool {
	_, ok := nextStatus[s]
	return !ok
}

// CanTransition reports whether from → to is a legal single step.
func CanTransition(from, to Status) bool {
	next, ok := nextStatus[from]
	return ok && next == to
}

// ToStatus parses a status value from request input. Matching is
// case-insensitive and "Delivered" is accepted as an alias for Completed;
// the chef app historically used both names for the terminal state.
func ToStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new":
		return StatusNew, nil
	case "processing":
		return StatusProcessing, nil
	case "ready":
		return StatusReady, nil
	case "completed", "delivered":
		return StatusCompleted, nil
	}
	return "", errors.New("invalid order status")
}

// Slot is the coarse delivery window an order line belongs to.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
)

// Slots returns all slots in kitchen display order.
func Slots() []Slot {
	return []Slot{SlotMorning, SlotAfternoon}
}

// ToSlot parses a slot value from request input, case-insensitively.
func ToSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning":
		return SlotMorning, nil
	case "afternoon":
		return SlotAfternoon, nil
	}
	return "", errors.New("invalid time slot")
}

// CartItem is one entry of a customer's cart submission.
type CartItem struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Sugar    string `json:"sugar,omitempty"`
}

// OrderLine is the persisted unit of one (customer, item, slot) request.
// Lines are only mutated through status transitions and are retained for
// history rather than deleted.
type OrderLine struct {
	ID           string    `bson:"_id" json:"id"`
	CustomerID   string    `bson:"customerId" json:"customerId"`
	CustomerName string    `bson:"customerName" json:"customerName"`
	Contact      string    `bson:"contact,omitempty" json:"contact,omitempty"`
	Item         string    `bson:"item" json:"item"`
	Quantity     int       `bson:"quantity" json:"quantity"`
	Sugar        string    `bson:"sugar" json:"sugar"`
	Slot         Slot      `bson:"slot" json:"timeSlot"`
	Status       Status    `bson:"status" json:"status"`
	PlacedAt     time.Time `bson:"placedAt" json:"placedAt"`
}

// AggregatedGroup is the kitchen dashboard projection for one (item, slot)
// partition. It is derived on every read and never stored.
type AggregatedGroup struct {
	Item     string `json:"item"`
	Slot     Slot   `json:"timeSlot"`
	Quantity int    `json:"quantity"`
	Status   Status `json:"status"`
}
