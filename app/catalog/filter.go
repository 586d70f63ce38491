package catalog

import (
	"strconv"
	"strings"
)

// Defaults applied by BuildFilter when parameters are absent or invalid.
const (
	DefaultSortField = "createdAt"
	DefaultPage      = 1
	DefaultLimit     = 10
)

// searchFields are the product attributes a free-text search matches against.
var searchFields = []string{"title", "description", "brand", "category", "tags"}

// ListParams are the raw, untrusted query parameters of a catalogue listing.
type ListParams struct {
	Search     string
	Categories []string
	Brands     []string
	Price      string // "100-200" or "100-200,500-600"
	SortBy     string
	SortOrder  string // "asc" or "desc"
	Page       int
	Limit      int
}

// AppliedFilters echoes back the filters a listing response was built from.
type AppliedFilters struct {
	Search    string   `json:"search,omitempty"`
	Category  []string `json:"category,omitempty"`
	Brand     []string `json:"brand,omitempty"`
	Price     string   `json:"price,omitempty"`
	SortBy    string   `json:"sortBy"`
	SortOrder string   `json:"sortOrder"`
}

// BuildFilter translates raw listing parameters into a predicate, a sort
// specification and a pagination window. It is pure: absent parameters mean
// "no filter on that dimension" and never produce an error.
func BuildFilter(p ListParams) (Predicate, Sort, Page) {
	var preds []Predicate

	if term := strings.TrimSpace(p.Search); term != "" {
		preds = append(preds, TextMatch{Fields: searchFields, Term: term})
	}

	if cats := trimNonEmpty(p.Categories); len(cats) > 0 {
		preds = append(preds, SetMembership{Field: "category", Values: cats})
	}

	if brands := trimNonEmpty(p.Brands); len(brands) > 0 {
		preds = append(preds, SetMembership{Field: "brand", Values: brands})
	}

	if strings.TrimSpace(p.Price) != "" {
		preds = append(preds, RangeUnion{Field: "price", Ranges: ParsePriceRanges(p.Price)})
	}

	return Conjunction{Preds: preds}, buildSort(p), buildPage(p)
}

// Applied returns the echo of the filters BuildFilter would act on.
func (p ListParams) Applied() AppliedFilters {
	order := "desc"
	if strings.EqualFold(p.SortOrder, "asc") {
		order = "asc"
	}
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = DefaultSortField
	}
	return AppliedFilters{
		Search:    strings.TrimSpace(p.Search),
		Category:  trimNonEmpty(p.Categories),
		Brand:     trimNonEmpty(p.Brands),
		Price:     strings.TrimSpace(p.Price),
		SortBy:    sortBy,
		SortOrder: order,
	}
}

// ParsePriceRanges parses a "min-max,min-max" string into ranges.
// Sub-ranges with unparseable bounds are dropped so they match nothing,
// rather than failing the whole query.
func ParsePriceRanges(s string) []Range {
	var out []Range
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, ok := strings.Cut(part, "-")
		if !ok {
			continue
		}
		min, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		max, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Range{Min: min, Max: max})
	}
	return out
}

func buildSort(p ListParams) Sort {
	field := strings.TrimSpace(p.SortBy)
	if field == "" {
		field = DefaultSortField
	}
	return Sort{
		Field:      field,
		Descending: !strings.EqualFold(p.SortOrder, "asc"),
	}
}

func buildPage(p ListParams) Page {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	return Page{Number: page, Size: limit}
}

func trimNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
