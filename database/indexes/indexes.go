// Package indexes declares the Mongo indexes the application relies on.
// Run via CLI: upahaar index:ensure
package indexes

import (
	"context"
	"fmt"

	"github.com/upahaar/upahaar/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll creates every index, skipping ones that already exist.
func EnsureAll(ctx context.Context) error {
	if err := ensure(ctx, "products", []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "tags", Value: "text"},
		}},
	}); err != nil {
		return err
	}

	if err := ensure(ctx, "users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return err
	}

	return ensure(ctx, "carts", []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
}

func ensure(ctx context.Context, collection string, models []mongo.IndexModel) error {
	_, err := database.Collection(collection).Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("indexes: ensure %s: %w", collection, err)
	}
	return nil
}
