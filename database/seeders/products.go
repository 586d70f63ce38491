package seeders

import (
	"context"

	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/app/repositories"
	"github.com/upahaar/upahaar/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts a small starter catalogue. Skips when the collection
// already has documents so reruns stay idempotent.
func SeedProducts(ctx context.Context) error {
	count, err := database.Collection("products").CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Title: "Personalised Birthday Gift Box", Slug: "personalised-birthday-gift-box",
			Description: "A curated box of treats with a personalised card.",
			Brand:       "Ferns N Petals", Category: "Birthday",
			Price: 1499, Discount: 200, Stock: 40,
			Images:    []string{"seed/birthday-box.jpg"},
			Occasions: []string{"Birthday"},
			Tags:      []string{"gift", "box", "personalised"},
			IsCustomizable: true, GiftWrapAvailable: true, GiftMessageAllowed: true,
			Status: "active",
		},
		{
			Title: "Anniversary Photo Frame", Slug: "anniversary-photo-frame",
			Description: "Engraved wooden frame for two photographs.",
			Brand:       "Archies", Category: "Anniversary",
			Price: 899, Stock: 25,
			Images:    []string{"seed/photo-frame.jpg"},
			Occasions: []string{"Anniversary", "Wedding"},
			Tags:      []string{"photo", "frame", "engraved"},
			GiftWrapAvailable: true, GiftMessageAllowed: true,
			Status: "active",
		},
		{
			Title: "Scented Candle Trio", Slug: "scented-candle-trio",
			Description: "Lavender, vanilla and sandalwood soy candles.",
			Brand:       "Chumbak", Category: "Home Decor",
			Price: 699, Discount: 100, Stock: 60,
			Images: []string{"seed/candle-trio.jpg"},
			Tags:   []string{"candle", "home", "relax"},
			Status: "active",
		},
		{
			Title: "Chocolate Celebration Hamper", Slug: "chocolate-celebration-hamper",
			Description: "Assorted chocolates with dry fruits.",
			Brand:       "Cadbury", Category: "Birthday",
			Price: 1199, Stock: 80,
			Images:    []string{"seed/chocolate-hamper.jpg"},
			Occasions: []string{"Birthday", "Diwali"},
			Tags:      []string{"chocolate", "hamper"},
			GiftWrapAvailable: true,
			Status:            "active",
		},
		{
			Title: "Silver Heart Pendant", Slug: "silver-heart-pendant",
			Description: "Sterling silver pendant with chain.",
			Brand:       "Tanishq", Category: "Jewellery",
			Price: 2499, Discount: 300, Stock: 15,
			Images:         []string{"seed/silver-pendant.jpg"},
			Occasions:      []string{"Valentine", "Anniversary"},
			Tags:           []string{"silver", "pendant", "jewellery"},
			LimitedEdition: true,
			Status:         "active",
		},
	}
	for i := range products {
		products[i].ComputeFinalPrice()
	}

	_, err = repositories.NewProductRepository().InsertMany(ctx, products)
	return err
}
