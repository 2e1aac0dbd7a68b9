package repository

import (
	"context"
	"fmt"
	"time"

	"doitto/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureMongoIndexes creates the indexes backing the directory and card holder queries.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		config.HelpersCollection: {
			{Keys: bson.D{{Key: "zipcodes", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "zipcodes", Value: 1}}},
		},
		config.CardHoldersCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		config.CategoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
