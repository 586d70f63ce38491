package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/upahaar/upahaar/app/catalog"
	"github.com/upahaar/upahaar/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func search(t *testing.T, store catalog.Store, query string, limit int) catalog.SearchResult {
	t.Helper()
	res, err := catalog.NewAutocomplete(store).Search(context.Background(), query, limit)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	return res
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	store := &fakeStore{products: seedProducts()}

	for _, q := range []string{"", "   ", "\t\n"} {
		res := search(t, store, q, 5)
		if res.Suggestions == nil || res.Similar == nil {
			t.Errorf("query %q: expected empty non-nil slices", q)
		}
		if len(res.Suggestions) != 0 || len(res.Similar) != 0 {
			t.Errorf("query %q: expected no results", q)
		}
	}
	if store.calls != 0 {
		t.Errorf("expected zero store calls for blank queries, got %d", store.calls)
	}
}

func TestSearchSuggestionsTagged(t *testing.T) {
	store := &fakeStore{products: seedProducts()}
	res := search(t, store, "birthday", 5)

	if len(res.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(res.Suggestions))
	}
	for _, s := range res.Suggestions {
		if s.Type != "suggestion" {
			t.Errorf("suggestion %q tagged %q", s.Title, s.Type)
		}
		if s.ID.IsZero() || s.Title == "" {
			t.Errorf("incomplete suggestion item %+v", s)
		}
	}
}

func TestSearchSimilarDisjointFromSuggestions(t *testing.T) {
	store := &fakeStore{products: seedProducts()}
	res := search(t, store, "gift", 5)

	seen := make(map[primitive.ObjectID]bool)
	for _, s := range res.Suggestions {
		seen[s.ID] = true
	}
	for _, s := range res.Similar {
		if seen[s.ID] {
			t.Errorf("product %q appears in both suggestions and similar", s.Title)
		}
		if s.Type != "similar" {
			t.Errorf("similar item %q tagged %q", s.Title, s.Type)
		}
	}
}

func TestSearchSimilarByCategory(t *testing.T) {
	store := &fakeStore{products: seedProducts()}

	// "gift" suggests Birthday Gift Box; Chocolate Hamper shares the
	// Birthday category and must surface as similar.
	res := search(t, store, "gift", 5)

	found := false
	for _, s := range res.Similar {
		if s.Title == "Chocolate Hamper" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Chocolate Hamper among similar items, got %+v", res.Similar)
	}
}

func TestSearchLimitDefaultsToFive(t *testing.T) {
	var products []models.Product
	for _, p := range seedProducts() {
		p.Title = "Gift " + p.Title
		products = append(products, p)
	}
	store := &fakeStore{products: products}

	res := search(t, store, "gift", 0)
	if len(res.Suggestions) != 5 {
		t.Errorf("expected default limit of 5 suggestions, got %d", len(res.Suggestions))
	}
}

func TestSearchNoMatches(t *testing.T) {
	store := &fakeStore{products: seedProducts()}

	res := search(t, store, "zzz-no-match", 5)
	if len(res.Suggestions) != 0 || len(res.Similar) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
	if res.Suggestions == nil || res.Similar == nil {
		t.Error("expected empty non-nil slices")
	}
}

// errStore fails every operation, for error propagation tests.
type errStore struct{ err error }

func (e *errStore) FindCards(context.Context, bson.M, bson.D, int64, int64) ([]models.ProductCard, error) {
	return nil, e.err
}
func (e *errStore) Count(context.Context, bson.M) (int64, error) { return 0, e.err }
func (e *errStore) FindRefs(context.Context, bson.M, int64) ([]catalog.ProductRef, error) {
	return nil, e.err
}

func TestListStoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	pred, sortSpec, page := catalog.BuildFilter(catalog.ListParams{})

	_, err := catalog.NewExecutor(&errStore{err: boom}).List(context.Background(), pred, sortSpec, page)
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
	if !strings.Contains(err.Error(), "catalog:") {
		t.Errorf("expected catalog context in error, got %q", err)
	}
}

func TestSearchStoreFailure(t *testing.T) {
	boom := errors.New("server selection timeout")
	_, err := catalog.NewAutocomplete(&errStore{err: boom}).Search(context.Background(), "gift", 5)
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
