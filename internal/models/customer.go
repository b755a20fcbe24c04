package models

import "time"

// DefaultSugarLevel is used for cart items and profiles that don't specify one.
const DefaultSugarLevel = "Normal"

// Preferences holds a customer's saved drink defaults, used by the ordering
// screen to pre-fill the cart.
type Preferences struct {
	DefaultDrink    string `bson:"defaultDrink" json:"defaultDrink"`
	DefaultSugar    string `bson:"defaultSugar" json:"defaultSugar"`
	DefaultQuantity int    `bson:"defaultQuantity" json:"defaultQuantity"`
}

// Customer is the lightweight profile read by the order-placement flow.
// The order core never mutates it; preferences change through their own
// endpoint.
type Customer struct {
	CustomerID  string      `bson:"customerId" json:"customerId"`
	Name        string      `bson:"name" json:"name"`
	Email       string      `bson:"email" json:"email"`
	Preferences Preferences `bson:"preferences" json:"preferences"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// DefaultCustomer is the profile created on first access, mirroring the
// mobile app's seeded café user.
func DefaultCustomer(customerID string) Customer {
	return Customer{
		CustomerID: customerID,
		Name:       "Café App User",
		Email:      "user@company.com",
		Preferences: Preferences{
			DefaultDrink:    "Latte",
			DefaultSugar:    DefaultSugarLevel,
			DefaultQuantity: 1,
		},
	}
}
