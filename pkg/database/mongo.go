// Package database manages the long-lived MongoDB connection.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/upahaar/upahaar/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB client and verifies it with a ping.
// Returns an error instead of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())
	return nil
}

// DB returns the application database handle.
func DB() *mongo.Database { return db }

// Collection returns a named collection from the application database.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// Close disconnects the client.
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
