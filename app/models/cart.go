package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customization holds the gifting options chosen for a cart item.
type Customization struct {
	Message  string `bson:"message,omitempty" json:"message,omitempty"`
	GiftWrap bool   `bson:"giftWrap" json:"giftWrap"`
}

// CartItem is one line in a cart.
type CartItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Product       primitive.ObjectID `bson:"product" json:"product"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Price         float64            `bson:"price" json:"price"`
	Customization Customization      `bson:"customization,omitempty" json:"customization,omitempty"`
	AddedAt       time.Time          `bson:"addedAt" json:"addedAt"`
}

// Cart is a per-user document in the carts collection. One cart per user.
type Cart struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Items       []CartItem         `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	TotalItems  int                `bson:"totalItems" json:"totalItems"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecomputeTotals recalculates TotalItems and TotalAmount from the items.
// Mirrors what happens on every cart mutation.
func (c *Cart) RecomputeTotals() {
	c.TotalItems = 0
	c.TotalAmount = 0
	for _, item := range c.Items {
		c.TotalItems += item.Quantity
		c.TotalAmount += item.Price * float64(item.Quantity)
	}
}
