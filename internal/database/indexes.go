package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	// slot+item serves the chef dashboard's aggregation and detail queries.
	slotItemIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "slot", Value: 1},
			{Key: "item", Value: 1},
		},
		Options: options.Index().SetName("slot_item_index"),
	}

	customerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}},
		Options: options.Index().SetName("customerId_index"),
	}

	log.Println("EnsureOrderIndexes: creating slot_item_index and customerId_index")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{slotItemIndex, customerIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: indexes created")
	return nil
}

func EnsureCustomerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("customers").Indexes()

	customerIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "customerId", Value: 1}},
		Options: options.Index().
			SetName("customerId_unique").
			SetUnique(true),
	}

	log.Println("EnsureCustomerIndexes: creating customerId_unique index")
	_, err := indexes.CreateOne(ctx, customerIDIndex)
	if err != nil {
		log.Println("EnsureCustomerIndexes: customerId index error:", err)
		return err
	}
	log.Println("EnsureCustomerIndexes: customerId_unique index created")
	return nil
}
