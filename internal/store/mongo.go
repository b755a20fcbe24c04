package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"backend/internal/models"
)

const (
	ordersCollection    = "orders"
	customersCollection = "customers"

	// casRetries bounds re-reads when a concurrent writer wins the
	// conditional status update.
	casRetries = 3
)

// MongoStore backs OrderStore and CustomerStore with MongoDB.
type MongoStore struct {
	db  *mongo.Database
	now func() time.Time
}

func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db, now: time.Now}
}

func (m *MongoStore) orders() *mongo.Collection {
	return m.db.Collection(ordersCollection)
}

func (m *MongoStore) customers() *mongo.Collection {
	return m.db.Collection(customersCollection)
}

// CreateOrders inserts the whole cart inside one transaction so a failed
// insert never leaves a partial order behind.
func (m *MongoStore) CreateOrders(ctx context.Context, customerID, customerName, contact string, slot models.Slot, items []models.CartItem) ([]models.OrderLine, error) {
	lines, err := buildLines(customerID, customerName, contact, slot, items, m.now().UTC())
	if err != nil {
		return nil, err
	}

	session, err := m.db.Client().StartSession()
	if err != nil {
		return nil, StoreUnavailableError{Err: fmt.Errorf("start session: %w", err)}
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		docs := make([]interface{}, 0, len(lines))
		for _, line := range lines {
			docs = append(docs, line)
		}
		if _, err := m.orders().InsertMany(sessCtx, docs); err != nil {
			return nil, fmt.Errorf("insert orders: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, StoreUnavailableError{Err: err}
	}

	return lines, nil
}

func (m *MongoStore) GetByID(ctx context.Context, id string) (models.OrderLine, error) {
	var line models.OrderLine

	err := m.orders().FindOne(ctx, bson.M{"_id": id}).Decode(&line)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.OrderLine{}, NotFoundError{ID: id}
	}
	if err != nil {
		return models.OrderLine{}, StoreUnavailableError{Err: err}
	}
	return line, nil
}

// UpdateStatus is a compare-and-set: the write only matches when the status
// is still the one the transition was validated against. Losing the race
// re-reads and revalidates, so two concurrent advances can never both
// succeed past the same state.
func (m *MongoStore) UpdateStatus(ctx context.Context, id string, next models.Status) (models.OrderLine, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		current, err := m.GetByID(ctx, id)
		if err != nil {
			return models.OrderLine{}, err
		}

		if !models.CanTransition(current.Status, next) {
			return models.OrderLine{}, InvalidTransitionError{From: current.Status, To: next}
		}

		var updated models.OrderLine
		err = m.orders().FindOneAndUpdate(
			ctx,
			bson.M{"_id": id, "status": current.Status},
			bson.M{"$set": bson.M{"status": next}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Someone else changed the status between read and write.
			continue
		}
		if err != nil {
			return models.OrderLine{}, StoreUnavailableError{Err: err}
		}
		return updated, nil
	}

	return models.OrderLine{}, StoreUnavailableError{Err: errors.New("status update contention, retries exhausted")}
}

// Query returns matches sorted by placement time ascending, with the id as a
// tiebreaker so the order is deterministic for a fixed snapshot.
func (m *MongoStore) Query(ctx context.Context, filter OrderFilter) ([]models.OrderLine, error) {
	query := bson.M{}
	if filter.Item != "" {
		query["item"] = filter.Item
	}
	if filter.Slot != "" {
		query["slot"] = filter.Slot
	}
	if filter.CustomerID != "" {
		query["customerId"] = filter.CustomerID
	}

	cursor, err := m.orders().Find(ctx, query, options.Find().SetSort(bson.D{
		{Key: "placedAt", Value: 1},
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		return nil, StoreUnavailableError{Err: err}
	}
	defer cursor.Close(ctx)

	var lines []models.OrderLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, StoreUnavailableError{Err: err}
	}
	return lines, nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := m.db.Client().Ping(checkCtx, readpref.Primary()); err != nil {
		return StoreUnavailableError{Err: err}
	}
	return nil
}

// GetProfile upserts the default café profile on first access, in one
// round-trip, so a brand-new customer always gets a usable profile back.
func (m *MongoStore) GetProfile(ctx context.Context, customerID string) (models.Customer, error) {
	if strings.TrimSpace(customerID) == "" {
		return models.Customer{}, ValidationError{Msg: "customerId is required"}
	}

	defaults := models.DefaultCustomer(customerID)
	now := m.now().UTC()

	var customer models.Customer
	err := m.customers().FindOneAndUpdate(
		ctx,
		bson.M{"customerId": customerID},
		bson.M{"$setOnInsert": bson.M{
			"customerId":  customerID,
			"name":        defaults.Name,
			"email":       defaults.Email,
			"preferences": defaults.Preferences,
			"createdAt":   now,
			"updatedAt":   now,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&customer)
	if err != nil {
		return models.Customer{}, StoreUnavailableError{Err: err}
	}
	return customer, nil
}

func (m *MongoStore) UpdatePreferences(ctx context.Context, customerID, name, email string, prefs models.Preferences) (models.Customer, error) {
	if err := validatePreferences(customerID, name, email, prefs); err != nil {
		return models.Customer{}, err
	}

	var customer models.Customer
	err := m.customers().FindOneAndUpdate(
		ctx,
		bson.M{"customerId": customerID},
		bson.M{"$set": bson.M{
			"name":        strings.TrimSpace(name),
			"email":       strings.TrimSpace(email),
			"preferences": prefs,
			"updatedAt":   m.now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Customer{}, NotFoundError{ID: customerID}
	}
	if err != nil {
		return models.Customer{}, StoreUnavailableError{Err: err}
	}
	return customer, nil
}

func validatePreferences(customerID, name, email string, prefs models.Preferences) error {
	switch {
	case strings.TrimSpace(customerID) == "":
		return ValidationError{Msg: "customerId is required"}
	case strings.TrimSpace(name) == "":
		return ValidationError{Msg: "name is required"}
	case strings.TrimSpace(email) == "":
		return ValidationError{Msg: "email is required"}
	case strings.TrimSpace(prefs.DefaultDrink) == "" || strings.TrimSpace(prefs.DefaultSugar) == "":
		return ValidationError{Msg: "defaultDrink and defaultSugar are required"}
	case prefs.DefaultQuantity < 1:
		return ValidationError{Msg: "defaultQuantity must be at least 1"}
	}
	return nil
}
