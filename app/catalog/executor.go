package catalog

import (
	"context"
	"fmt"

	"github.com/upahaar/upahaar/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRef is the minimal projection the autocomplete engine works with.
type ProductRef struct {
	ID       primitive.ObjectID `bson:"_id"`
	Title    string             `bson:"title"`
	Category string             `bson:"category"`
}

// Store is the catalog storage handle the executor and autocomplete engine
// query. It is satisfied by repositories.ProductRepository and by fakes in
// tests.
type Store interface {
	// FindCards returns one page of display-safe product projections.
	FindCards(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.ProductCard, error)

	// Count returns the total number of documents matching filter,
	// independent of any page window.
	Count(ctx context.Context, filter bson.M) (int64, error)

	// FindRefs returns up to limit id/title/category projections matching
	// filter, in storage-natural order.
	FindRefs(ctx context.Context, filter bson.M, limit int64) ([]ProductRef, error)
}

// Pagination is the paging metadata attached to every listing response.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
	Limit int   `json:"limit"`
}

// ListResult is a page of products plus its pagination metadata.
type ListResult struct {
	Products   []models.ProductCard `json:"products"`
	Pagination Pagination           `json:"pagination"`
}

// Executor runs compiled predicates against the catalog store.
type Executor struct {
	store Store
}

// NewExecutor returns an Executor reading from store.
func NewExecutor(store Store) *Executor {
	return &Executor{store: store}
}

// List retrieves one page of products matching pred, plus a total count
// issued independently against the same predicate.
func (e *Executor) List(ctx context.Context, pred Predicate, sort Sort, page Page) (ListResult, error) {
	filter := Compile(pred)

	products, err := e.store.FindCards(ctx, filter, CompileSort(sort), page.Skip(), int64(page.Size))
	if err != nil {
		return ListResult{}, fmt.Errorf("catalog: list products: %w", err)
	}
	if products == nil {
		products = []models.ProductCard{}
	}

	total, err := e.store.Count(ctx, filter)
	if err != nil {
		return ListResult{}, fmt.Errorf("catalog: count products: %w", err)
	}

	return ListResult{
		Products: products,
		Pagination: Pagination{
			Total: total,
			Page:  page.Number,
			Pages: ceilDiv(total, int64(page.Size)),
			Limit: page.Size,
		},
	}, nil
}

func ceilDiv(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
