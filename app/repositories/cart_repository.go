package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository handles database operations for Cart. Each user owns at most
// one cart document.
type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository() *CartRepository {
	return &CartRepository{coll: database.Collection("carts")}
}

// FindByUser fetches the user's cart. mongo.ErrNoDocuments means the user has
// no cart yet.
func (r *CartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err != nil {
		return cart, fmt.Errorf("repositories: find cart for %s: %w", userID.Hex(), err)
	}
	return cart, nil
}

// Save upserts the full cart document keyed by its owning user.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	res, err := r.coll.ReplaceOne(ctx,
		bson.M{"user": cart.User},
		cart,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("repositories: save cart for %s: %w", cart.User.Hex(), err)
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		cart.ID = id
	}
	return nil
}

// DeleteByUser removes the user's cart entirely, typically after checkout.
func (r *CartRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return fmt.Errorf("repositories: delete cart for %s: %w", userID.Hex(), err)
	}
	return nil
}
