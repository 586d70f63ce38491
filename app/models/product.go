package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ratings is the aggregated review summary embedded in a product.
type Ratings struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Review is a single customer review embedded in a product.
type Review struct {
	UserID  primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Rating  float64            `bson:"rating" json:"rating"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date    time.Time          `bson:"date,omitempty" json:"date,omitempty"`
}

// Seller identifies the vendor a product belongs to.
type Seller struct {
	ID   primitive.ObjectID `bson:"id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name,omitempty" json:"name,omitempty"`
}

// Meta holds SEO fields for a product page.
type Meta struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Product is a catalogue document in the products collection.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Brand       string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Category    string             `bson:"category" json:"category"`
	SubCategory string             `bson:"subCategory,omitempty" json:"subCategory,omitempty"`

	Price      float64 `bson:"price" json:"price"`
	Discount   float64 `bson:"discount" json:"discount"`
	FinalPrice float64 `bson:"finalPrice" json:"finalPrice"`
	Stock      int     `bson:"stock" json:"stock"`

	Images []string `bson:"images" json:"images"`

	// Gift-specific
	Occasions           []string `bson:"occasions,omitempty" json:"occasions,omitempty"`
	IsCustomizable      bool     `bson:"isCustomizable" json:"isCustomizable"`
	CustomizationFields []string `bson:"customizationFields,omitempty" json:"customizationFields,omitempty"`
	GiftWrapAvailable   bool     `bson:"giftWrapAvailable" json:"giftWrapAvailable"`
	GiftMessageAllowed  bool     `bson:"giftMessageAllowed" json:"giftMessageAllowed"`

	Ratings Ratings  `bson:"ratings" json:"ratings"`
	Reviews []Review `bson:"reviews,omitempty" json:"reviews,omitempty"`

	Tags          []string `bson:"tags,omitempty" json:"tags,omitempty"`
	IsRecommended bool     `bson:"isRecommended" json:"isRecommended"`
	TotalSold     int      `bson:"totalSold" json:"totalSold"`

	DeliveryTime   string               `bson:"deliveryTime,omitempty" json:"deliveryTime,omitempty"`
	BundleItems    []primitive.ObjectID `bson:"bundleItems,omitempty" json:"bundleItems,omitempty"`
	LimitedEdition bool                 `bson:"limitedEdition" json:"limitedEdition"`
	SeasonalTag    string               `bson:"seasonalTag,omitempty" json:"seasonalTag,omitempty"`

	// "active", "out-of-stock" or "hidden".
	Status string `bson:"status" json:"status"`

	Seller Seller `bson:"seller,omitempty" json:"seller,omitempty"`
	Meta   Meta   `bson:"meta,omitempty" json:"meta,omitempty"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedBy primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductCard is the projected shape returned by catalogue listings:
// title, images, price fields, category, brand, stock and ratings only.
type ProductCard struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Title      string             `bson:"title" json:"title"`
	Images     []string           `bson:"images" json:"images"`
	Price      float64            `bson:"price" json:"price"`
	Discount   float64            `bson:"discount" json:"discount"`
	FinalPrice float64            `bson:"finalPrice" json:"finalPrice"`
	Category   string             `bson:"category" json:"category"`
	Brand      string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Stock      int                `bson:"stock" json:"stock"`
	Ratings    Ratings            `bson:"ratings" json:"ratings"`
}

// ComputeFinalPrice fills FinalPrice from Price and Discount when it was not
// supplied. A supplied value is kept verbatim. The result never drops below 0.
func (p *Product) ComputeFinalPrice() {
	if p.FinalPrice != 0 {
		return
	}
	fp := p.Price - p.Discount
	if fp < 0 {
		fp = 0
	}
	p.FinalPrice = fp
}
