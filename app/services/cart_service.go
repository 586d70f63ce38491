package services

import (
	"context"
	"errors"
	"time"

	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/app/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemNotInCart     = errors.New("item not in cart")
)

// CartService manages the per-user cart. Item prices are captured at add
// time from the product's effective price.
type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Get returns the user's cart, or an empty cart if none exists yet.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Cart{User: userID, Items: []models.CartItem{}}, nil
		}
		return models.Cart{}, err
	}
	return cart, nil
}

// AddItem puts qty units of a product in the cart, merging with an existing
// line for the same product. The product must have enough stock to cover the
// resulting quantity.
func (s *CartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, qty int, custom models.Customization) (models.Cart, error) {
	if qty < 1 {
		qty = 1
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Cart{}, ErrProductNotFound
		}
		return models.Cart{}, err
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].Product == productID {
			cart.Items[i].Quantity += qty
			cart.Items[i].Customization = custom
			if cart.Items[i].Quantity > product.Stock {
				return models.Cart{}, ErrInsufficientStock
			}
			merged = true
			break
		}
	}
	if !merged {
		if qty > product.Stock {
			return models.Cart{}, ErrInsufficientStock
		}
		cart.Items = append(cart.Items, models.CartItem{
			ID:            primitive.NewObjectID(),
			Product:       productID,
			Quantity:      qty,
			Price:         effectivePrice(product),
			Customization: custom,
			AddedAt:       time.Now(),
		})
	}

	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// UpdateItem sets the quantity of an existing cart line. Zero removes it.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, qty int) (models.Cart, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Cart{}, ErrItemNotInCart
		}
		return models.Cart{}, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].Product == productID {
			product, err := s.products.FindByID(ctx, productID)
			if err != nil {
				return models.Cart{}, err
			}
			if qty > product.Stock {
				return models.Cart{}, ErrInsufficientStock
			}
			cart.Items[i].Quantity = qty
			found = true
			break
		}
	}
	if !found {
		return models.Cart{}, ErrItemNotInCart
	}

	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// RemoveItem deletes a product's line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Cart{}, ErrItemNotInCart
		}
		return models.Cart{}, err
	}

	items := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.Product == productID {
			removed = true
			continue
		}
		items = append(items, item)
	}
	if !removed {
		return models.Cart{}, ErrItemNotInCart
	}
	cart.Items = items

	cart.RecomputeTotals()
	if err := s.carts.Save(ctx, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.DeleteByUser(ctx, userID)
}

// effectivePrice is what the customer pays for one unit right now.
func effectivePrice(p models.Product) float64 {
	if p.FinalPrice > 0 {
		return p.FinalPrice
	}
	return p.Price
}
