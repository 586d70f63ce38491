package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/upahaar/upahaar/app/catalog"
	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/pkg/ctx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubStore returns canned pages and records the filters it was given.
type stubStore struct {
	cards      []models.ProductCard
	refs       []catalog.ProductRef
	total      int64
	lastFilter bson.M
	lastSkip   int64
	lastLimit  int64
}

func (s *stubStore) FindCards(_ context.Context, filter bson.M, _ bson.D, skip, limit int64) ([]models.ProductCard, error) {
	s.lastFilter, s.lastSkip, s.lastLimit = filter, skip, limit
	return s.cards, nil
}

func (s *stubStore) Count(context.Context, bson.M) (int64, error) { return s.total, nil }

func (s *stubStore) FindRefs(context.Context, bson.M, int64) ([]catalog.ProductRef, error) {
	return s.refs, nil
}

type testEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestProductListResponseShape(t *testing.T) {
	store := &stubStore{
		cards: []models.ProductCard{
			{ID: primitive.NewObjectID(), Title: "Gift Box", Price: 150, Category: "Birthday"},
		},
		total: 12,
	}
	pc := NewProductControllerWith(store, nil)

	req := httptest.NewRequest("GET", "/api/v1/products?search=gift&category=Birthday&price=100-200&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	ctx.Wrap(pc.List)(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if env.Status != 200 {
		t.Errorf("expected status 200 in envelope, got %d", env.Status)
	}

	var data struct {
		Products   []models.ProductCard   `json:"products"`
		Pagination catalog.Pagination     `json:"pagination"`
		Applied    catalog.AppliedFilters `json:"appliedFilters"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}

	want := catalog.Pagination{Total: 12, Page: 2, Pages: 3, Limit: 5}
	if data.Pagination != want {
		t.Errorf("expected pagination %+v, got %+v", want, data.Pagination)
	}
	if len(data.Products) != 1 || data.Products[0].Title != "Gift Box" {
		t.Errorf("unexpected products %+v", data.Products)
	}
	if data.Applied.Search != "gift" {
		t.Errorf("appliedFilters should echo search, got %+v", data.Applied)
	}

	if store.lastSkip != 5 || store.lastLimit != 5 {
		t.Errorf("expected skip=5 limit=5, got skip=%d limit=%d", store.lastSkip, store.lastLimit)
	}
	if _, ok := store.lastFilter["$and"]; !ok {
		t.Errorf("expected conjunction filter, got %v", store.lastFilter)
	}
}

func TestProductListQueryParamFallback(t *testing.T) {
	store := &stubStore{}
	pc := NewProductControllerWith(store, nil)

	req := httptest.NewRequest("GET", "/api/v1/products?query=mug", nil)
	rec := httptest.NewRecorder()
	ctx.Wrap(pc.List)(rec, req)

	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	var data struct {
		Applied catalog.AppliedFilters `json:"appliedFilters"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if data.Applied.Search != "mug" {
		t.Errorf("query param should act as search, got %+v", data.Applied)
	}
}

func TestProductListEmptyIsSuccess(t *testing.T) {
	store := &stubStore{}
	pc := NewProductControllerWith(store, nil)

	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	ctx.Wrap(pc.List)(rec, req)

	if rec.Code != 200 {
		t.Fatalf("empty result must still be 200, got %d", rec.Code)
	}
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	var data struct {
		Products []models.ProductCard `json:"products"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if data.Products == nil {
		t.Error("products must be an empty array, not null")
	}
}

func TestSearchAheadTagsResults(t *testing.T) {
	store := &stubStore{
		refs: []catalog.ProductRef{
			{ID: primitive.NewObjectID(), Title: "Gift Box", Category: "Birthday"},
		},
	}
	pc := NewProductControllerWith(store, nil)

	req := httptest.NewRequest("GET", "/api/v1/products/search?query=gift", nil)
	rec := httptest.NewRecorder()
	ctx.Wrap(pc.SearchAhead)(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	var data catalog.SearchResult
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	for _, s := range data.Suggestions {
		if s.Type != "suggestion" {
			t.Errorf("suggestion tagged %q", s.Type)
		}
	}
	for _, s := range data.Similar {
		if s.Type != "similar" {
			t.Errorf("similar tagged %q", s.Type)
		}
	}
}

func TestSearchAheadEmptyQuery(t *testing.T) {
	store := &stubStore{}
	pc := NewProductControllerWith(store, nil)

	req := httptest.NewRequest("GET", "/api/v1/products/search?query=", nil)
	rec := httptest.NewRecorder()
	ctx.Wrap(pc.SearchAhead)(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	var data catalog.SearchResult
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if data.Suggestions == nil || data.Similar == nil {
		t.Error("expected empty arrays, not null")
	}
	if len(data.Suggestions) != 0 || len(data.Similar) != 0 {
		t.Errorf("expected no results for empty query, got %+v", data)
	}
}
