package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/upahaar/upahaar/app/catalog"
	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/pkg/database"
	"github.com/upahaar/upahaar/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cardProjection restricts catalogue listings to display-safe fields.
var cardProjection = bson.M{
	"title":      1,
	"images":     1,
	"price":      1,
	"discount":   1,
	"finalPrice": 1,
	"category":   1,
	"brand":      1,
	"stock":      1,
	"ratings":    1,
}

// refProjection is the minimal shape the autocomplete engine needs.
var refProjection = bson.M{"title": 1, "category": 1}

// ProductRepository handles database operations for Product. It satisfies
// catalog.Store.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{coll: database.Collection("products")}
}

// FindCards returns one page of product card projections.
func (r *ProductRepository) FindCards(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.ProductCard, error) {
	start := time.Now()
	defer metrics.ObserveCatalogQuery("find", start)

	opts := options.Find().
		SetProjection(cardProjection).
		SetSort(sort).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("repositories: find products: %w", err)
	}
	defer cur.Close(ctx)

	var cards []models.ProductCard
	if err := cur.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("repositories: decode products: %w", err)
	}
	metrics.CatalogResults.WithLabelValues("find").Observe(float64(len(cards)))
	return cards, nil
}

// Count returns the number of documents matching filter.
func (r *ProductRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	start := time.Now()
	defer metrics.ObserveCatalogQuery("count", start)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("repositories: count products: %w", err)
	}
	return total, nil
}

// FindRefs returns up to limit id/title/category projections matching filter.
func (r *ProductRepository) FindRefs(ctx context.Context, filter bson.M, limit int64) ([]catalog.ProductRef, error) {
	start := time.Now()
	defer metrics.ObserveCatalogQuery("suggest", start)

	opts := options.Find().SetProjection(refProjection).SetLimit(limit)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("repositories: find refs: %w", err)
	}
	defer cur.Close(ctx)

	var refs []catalog.ProductRef
	if err := cur.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("repositories: decode refs: %w", err)
	}
	return refs, nil
}

// FindByID fetches a full product document.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return product, fmt.Errorf("repositories: find product %s: %w", id.Hex(), err)
	}
	return product, nil
}

// FindBySlug fetches a full product document by its URL slug.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	if err != nil {
		return product, fmt.Errorf("repositories: find product slug %q: %w", slug, err)
	}
	return product, nil
}

// Insert persists a new product and fills its generated id.
func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("repositories: insert product: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

// InsertMany persists a batch of products in one round trip. It is used by
// the CSV ingest pipeline and the seeder.
func (r *ProductRepository) InsertMany(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		docs = append(docs, products[i])
	}

	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil {
		return inserted, fmt.Errorf("repositories: insert products: %w", err)
	}
	return inserted, nil
}

// Update replaces the mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("repositories: update product %s: %w", product.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("repositories: update product %s: %w", product.ID.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a product document.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("repositories: delete product %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("repositories: delete product %s: %w", id.Hex(), mongo.ErrNoDocuments)
	}
	return nil
}

// AdjustStock decrements stock by qty and fails if the remaining stock would
// go negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return fmt.Errorf("repositories: adjust stock %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("repositories: adjust stock %s: insufficient stock", id.Hex())
	}
	return nil
}
