package catalog_test

import (
	"reflect"
	"testing"

	"github.com/upahaar/upahaar/app/catalog"
)

func TestBuildFilterDefaults(t *testing.T) {
	pred, sort, page := catalog.BuildFilter(catalog.ListParams{})

	conj, ok := pred.(catalog.Conjunction)
	if !ok {
		t.Fatalf("expected Conjunction, got %T", pred)
	}
	if len(conj.Preds) != 0 {
		t.Errorf("expected no clauses for empty params, got %d", len(conj.Preds))
	}
	if sort.Field != "createdAt" || !sort.Descending {
		t.Errorf("expected createdAt desc default, got %+v", sort)
	}
	if page.Number != 1 || page.Size != 10 {
		t.Errorf("expected page=1 limit=10, got %+v", page)
	}
}

func TestBuildFilterAllDimensions(t *testing.T) {
	pred, sort, page := catalog.BuildFilter(catalog.ListParams{
		Search:     "gift box",
		Categories: []string{"Birthday", " Anniversary "},
		Brands:     []string{"Ferns"},
		Price:      "100-200,500-600",
		SortBy:     "price",
		SortOrder:  "asc",
		Page:       2,
		Limit:      5,
	})

	conj := pred.(catalog.Conjunction)
	if len(conj.Preds) != 4 {
		t.Fatalf("expected 4 clauses (search, category, brand, price), got %d", len(conj.Preds))
	}

	text := conj.Preds[0].(catalog.TextMatch)
	if text.Term != "gift box" {
		t.Errorf("unexpected search term %q", text.Term)
	}

	cats := conj.Preds[1].(catalog.SetMembership)
	if !reflect.DeepEqual(cats.Values, []string{"Birthday", "Anniversary"}) {
		t.Errorf("expected trimmed categories, got %v", cats.Values)
	}

	ranges := conj.Preds[3].(catalog.RangeUnion)
	want := []catalog.Range{{Min: 100, Max: 200}, {Min: 500, Max: 600}}
	if !reflect.DeepEqual(ranges.Ranges, want) {
		t.Errorf("expected %v, got %v", want, ranges.Ranges)
	}

	if sort.Field != "price" || sort.Descending {
		t.Errorf("expected price asc, got %+v", sort)
	}
	if page.Number != 2 || page.Size != 5 {
		t.Errorf("expected page=2 limit=5, got %+v", page)
	}
}

func TestParsePriceRangesMalformed(t *testing.T) {
	// Unparseable sub-ranges are dropped rather than failing the query.
	got := catalog.ParsePriceRanges("abc-def,100-200,,300")
	want := []catalog.Range{{Min: 100, Max: 200}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := catalog.ParsePriceRanges("abc-def"); got != nil {
		t.Errorf("expected no ranges for fully malformed input, got %v", got)
	}
}

func TestBuildFilterInvalidPaging(t *testing.T) {
	_, _, page := catalog.BuildFilter(catalog.ListParams{Page: -3, Limit: 0})
	if page.Number != 1 || page.Size != 10 {
		t.Errorf("expected defaults for invalid paging, got %+v", page)
	}
}

func TestPageSkip(t *testing.T) {
	p := catalog.Page{Number: 3, Size: 10}
	if p.Skip() != 20 {
		t.Errorf("expected skip 20, got %d", p.Skip())
	}
}

func TestAppliedFiltersEcho(t *testing.T) {
	applied := catalog.ListParams{
		Search:    " mug ",
		SortOrder: "ASC",
	}.Applied()

	if applied.Search != "mug" {
		t.Errorf("expected trimmed search, got %q", applied.Search)
	}
	if applied.SortBy != "createdAt" || applied.SortOrder != "asc" {
		t.Errorf("unexpected sort echo %+v", applied)
	}
}
