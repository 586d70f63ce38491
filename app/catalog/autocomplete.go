package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/upahaar/upahaar/pkg/collection"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSuggestLimit caps each autocomplete list when no limit is supplied.
const DefaultSuggestLimit = 5

// suggestFields are the attributes a partial query matches for suggestions.
var suggestFields = []string{"title", "category", "tags"}

// SearchItem is one autocomplete result, tagged by which list produced it.
type SearchItem struct {
	ID    primitive.ObjectID `json:"_id"`
	Title string             `json:"title"`
	Type  string             `json:"type"` // "suggestion" or "similar"
}

// SearchResult holds the two disjoint autocomplete lists.
type SearchResult struct {
	Suggestions []SearchItem `json:"suggestions"`
	Similar     []SearchItem `json:"similar"`
}

// Autocomplete produces direct-match suggestions and loosely related similar
// items for a partial text query.
type Autocomplete struct {
	store Store
}

// NewAutocomplete returns an Autocomplete reading from store.
func NewAutocomplete(store Store) *Autocomplete {
	return &Autocomplete{store: store}
}

// Search runs the two-phase autocomplete pipeline. The two lists are disjoint
// by identifier: the similar query excludes every suggestion id. An empty
// query short-circuits to two empty lists without touching the store.
func (a *Autocomplete) Search(ctx context.Context, query string, limit int) (SearchResult, error) {
	empty := SearchResult{Suggestions: []SearchItem{}, Similar: []SearchItem{}}

	query = strings.TrimSpace(query)
	if query == "" {
		return empty, nil
	}
	if limit < 1 {
		limit = DefaultSuggestLimit
	}

	suggestions, err := a.store.FindRefs(ctx,
		Compile(TextMatch{Fields: suggestFields, Term: query}), int64(limit))
	if err != nil {
		return empty, fmt.Errorf("catalog: suggestions: %w", err)
	}

	similar, err := a.store.FindRefs(ctx,
		Compile(a.similarPredicate(query, suggestions)), int64(limit))
	if err != nil {
		return empty, fmt.Errorf("catalog: similar: %w", err)
	}

	return SearchResult{
		Suggestions: tagItems(suggestions, "suggestion"),
		Similar:     tagItems(similar, "similar"),
	}, nil
}

// similarPredicate matches products not already suggested whose title
// contains any whitespace-delimited token of the query, or whose category
// appears among the suggestions' categories.
func (a *Autocomplete) similarPredicate(query string, suggestions []ProductRef) Predicate {
	var any []Predicate
	for _, token := range strings.Fields(query) {
		any = append(any, TextMatch{Fields: []string{"title"}, Term: token})
	}

	categories := collection.Unique(collection.Map(suggestions, func(r ProductRef) string {
		return r.Category
	}))
	if cats := nonEmpty(categories); len(cats) > 0 {
		any = append(any, SetMembership{Field: "category", Values: cats})
	}

	ids := collection.Map(suggestions, func(r ProductRef) primitive.ObjectID { return r.ID })

	return Conjunction{Preds: []Predicate{
		ExcludeIDs{IDs: ids},
		Disjunction{Preds: any},
	}}
}

func tagItems(refs []ProductRef, typ string) []SearchItem {
	out := make([]SearchItem, 0, len(refs))
	for _, r := range refs {
		out = append(out, SearchItem{ID: r.ID, Title: r.Title, Type: typ})
	}
	return out
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
