package catalog_test

import (
	"context"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/upahaar/upahaar/app/catalog"
	"github.com/upahaar/upahaar/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store that evaluates compiled filters against a
// fixed product slice, so tests exercise the full predicate semantics without
// a live database.
type fakeStore struct {
	products []models.Product
	calls    int
}

func (f *fakeStore) matching(filter bson.M) []models.Product {
	var out []models.Product
	for _, p := range f.products {
		if matches(p, filter) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeStore) FindCards(_ context.Context, filter bson.M, sortDoc bson.D, skip, limit int64) ([]models.ProductCard, error) {
	f.calls++
	matched := f.matching(filter)
	sortProducts(matched, sortDoc)

	var out []models.ProductCard
	for i := skip; i < int64(len(matched)) && int64(len(out)) < limit; i++ {
		p := matched[i]
		out = append(out, models.ProductCard{
			ID: p.ID, Title: p.Title, Images: p.Images, Price: p.Price,
			Category: p.Category, Brand: p.Brand, Stock: p.Stock, Ratings: p.Ratings,
		})
	}
	return out, nil
}

func (f *fakeStore) Count(_ context.Context, filter bson.M) (int64, error) {
	f.calls++
	return int64(len(f.matching(filter))), nil
}

func (f *fakeStore) FindRefs(_ context.Context, filter bson.M, limit int64) ([]catalog.ProductRef, error) {
	f.calls++
	var out []catalog.ProductRef
	for _, p := range f.matching(filter) {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, catalog.ProductRef{ID: p.ID, Title: p.Title, Category: p.Category})
	}
	return out, nil
}

func sortProducts(ps []models.Product, sortDoc bson.D) {
	if len(sortDoc) == 0 {
		return
	}
	field, dir := sortDoc[0].Key, sortDoc[0].Value.(int)
	sort.SliceStable(ps, func(i, j int) bool {
		var less bool
		switch field {
		case "price":
			less = ps[i].Price < ps[j].Price
		default: // createdAt
			less = ps[i].CreatedAt.Before(ps[j].CreatedAt)
		}
		if dir < 0 {
			return !less
		}
		return less
	})
}

// matches interprets the subset of the Mongo query language Compile emits.
func matches(p models.Product, filter bson.M) bool {
	for key, val := range filter {
		switch key {
		case "$and":
			for _, sub := range val.(bson.A) {
				if !matches(p, sub.(bson.M)) {
					return false
				}
			}
		case "$or":
			any := false
			for _, sub := range val.(bson.A) {
				if matches(p, sub.(bson.M)) {
					any = true
					break
				}
			}
			if !any {
				return false
			}
		case "_id":
			nin := val.(bson.M)["$nin"].([]primitive.ObjectID)
			for _, id := range nin {
				if id == p.ID {
					return false
				}
			}
		case "price":
			if !matchPrice(p.Price, val.(bson.M)) {
				return false
			}
		default:
			if !matchText(fieldValues(p, key), val) {
				return false
			}
		}
	}
	return true
}

func matchPrice(price float64, ops bson.M) bool {
	if in, ok := ops["$in"].(bson.A); ok {
		return len(in) > 0 // compiled empty unions match nothing
	}
	if min, ok := ops["$gte"].(float64); ok && price < min {
		return false
	}
	if max, ok := ops["$lte"].(float64); ok && price > max {
		return false
	}
	return true
}

func matchText(values []string, cond interface{}) bool {
	switch c := cond.(type) {
	case primitive.Regex:
		re := regexp.MustCompile("(?i)" + c.Pattern)
		for _, v := range values {
			if re.MatchString(v) {
				return true
			}
		}
		return false
	case bson.M:
		in := c["$in"].(bson.A)
		for _, item := range in {
			if matchText(values, item) {
				return true
			}
		}
		return false
	}
	return false
}

func fieldValues(p models.Product, field string) []string {
	switch field {
	case "title":
		return []string{p.Title}
	case "description":
		return []string{p.Description}
	case "brand":
		return []string{p.Brand}
	case "category":
		return []string{p.Category}
	case "tags":
		return p.Tags
	}
	return nil
}

// seedProducts builds a deterministic catalogue for the executor tests.
func seedProducts() []models.Product {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mk := func(i int, title, category, brand string, price float64, tags ...string) models.Product {
		return models.Product{
			ID:        primitive.NewObjectID(),
			Title:     title,
			Category:  category,
			Brand:     brand,
			Price:     price,
			Tags:      tags,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return []models.Product{
		mk(1, "Birthday Gift Box", "Birthday", "Ferns", 150, "gift", "box"),
		mk(2, "Anniversary Photo Frame", "Anniversary", "Archies", 550, "photo"),
		mk(3, "Scented Candle Set", "Home Decor", "Ferns", 300, "candle"),
		mk(4, "Chocolate Hamper", "Birthday", "Cadbury", 120, "chocolate"),
		mk(5, "Coffee Mug", "Kitchen", "Chumbak", 250, "mug"),
		mk(6, "Silver Pendant", "Jewellery", "Tanishq", 560, "silver"),
	}
}

func list(t *testing.T, store catalog.Store, params catalog.ListParams) catalog.ListResult {
	t.Helper()
	pred, sortSpec, page := catalog.BuildFilter(params)
	res, err := catalog.NewExecutor(store).List(context.Background(), pred, sortSpec, page)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	return res
}

func TestListPriceRange(t *testing.T) {
	store := &fakeStore{products: seedProducts()}
	res := list(t, store, catalog.ListParams{Price: "100-200"})

	if len(res.Products) == 0 {
		t.Fatal("expected matches in 100-200")
	}
	for _, p := range res.Products {
		if p.Price < 100 || p.Price > 200 {
			t.Errorf("product %q price %v outside 100-200", p.Title, p.Price)
		}
	}
}

func TestListMultiPriceRange(t *testing.T) {
	store := &fakeStore{products: seedProducts()}
	res := list(t, store, catalog.ListParams{Price: "100-200,500-600"})

	if len(res.Products) != 4 {
		t.Fatalf("expected 4 products across both ranges, got %d", len(res.Products))
	}
	for _, p := range res.Products {
		in1 := p.Price >= 100 && p.Price <= 200
		in2 := p.Price >= 500 && p.Price <= 600
		if !in1 && !in2 {
			t.Errorf("product %q price %v outside both ranges", p.Title, p.Price)
		}
	}
}

func TestListCategoryList(t *testing.T) {
	store := &fakeStore{products: seedProducts()}
	res := list(t, store, catalog.ListParams{Categories: []string{"Birthday", "Anniversary"}})

	if len(res.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(res.Products))
	}
	for _, p := range res.Products {
		if p.Category != "Birthday" && p.Category != "Anniversary" {
			t.Errorf("unexpected category %q", p.Category)
		}
	}
}

func TestListDefaultsNewestFirst(t *testing.T) {
	store := &fakeStore{products: seedProducts()}
	res := list(t, store, catalog.ListParams{})

	if res.Pagination.Page != 1 || res.Pagination.Limit != 10 {
		t.Errorf("expected page=1 limit=10, got %+v", res.Pagination)
	}
	if res.Products[0].Title != "Silver Pendant" {
		t.Errorf("expected newest product first, got %q", res.Products[0].Title)
	}
}

func TestListPaginationMetadata(t *testing.T) {
	// 12 products, page 2 of size 5 ⇒ {total:12, page:2, pages:3, limit:5}.
	base := time.Now()
	var products []models.Product
	for i := 0; i < 12; i++ {
		products = append(products, models.Product{
			ID:        primitive.NewObjectID(),
			Title:     "Item",
			Category:  "Misc",
			Price:     float64(i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	store := &fakeStore{products: products}

	res := list(t, store, catalog.ListParams{Page: 2, Limit: 5})

	want := catalog.Pagination{Total: 12, Page: 2, Pages: 3, Limit: 5}
	if res.Pagination != want {
		t.Errorf("expected %+v, got %+v", want, res.Pagination)
	}
	if len(res.Products) != 5 {
		t.Errorf("expected 5 products on page 2, got %d", len(res.Products))
	}
}

func TestListSearchMatchesAnyField(t *testing.T) {
	store := &fakeStore{products: seedProducts()}

	// "ferns" matches by brand, case-insensitively.
	res := list(t, store, catalog.ListParams{Search: "ferns"})
	if len(res.Products) != 2 {
		t.Errorf("expected 2 Ferns products, got %d", len(res.Products))
	}

	// "gift" matches Birthday Gift Box by title and tags.
	res = list(t, store, catalog.ListParams{Search: "GIFT"})
	if len(res.Products) != 1 || res.Products[0].Title != "Birthday Gift Box" {
		t.Errorf("unexpected search result %+v", res.Products)
	}
}

func TestListIdempotent(t *testing.T) {
	store := &fakeStore{products: seedProducts()}
	params := catalog.ListParams{Categories: []string{"Birthday"}, SortBy: "price", SortOrder: "asc"}

	first := list(t, store, params)
	second := list(t, store, params)

	if first.Pagination != second.Pagination {
		t.Errorf("pagination differs across identical queries: %+v vs %+v",
			first.Pagination, second.Pagination)
	}
	if len(first.Products) != len(second.Products) {
		t.Fatalf("result size differs: %d vs %d", len(first.Products), len(second.Products))
	}
	for i := range first.Products {
		if first.Products[i].ID != second.Products[i].ID {
			t.Errorf("result order differs at %d", i)
		}
	}
}

func TestListEmptyResultIsSuccess(t *testing.T) {
	store := &fakeStore{products: seedProducts()}
	res := list(t, store, catalog.ListParams{Search: "nonexistent"})

	if res.Products == nil {
		t.Error("expected empty slice, not nil")
	}
	if res.Pagination.Total != 0 || res.Pagination.Pages != 0 {
		t.Errorf("unexpected pagination %+v", res.Pagination)
	}
}
