// Package graphql exposes the catalogue over a single GraphQL endpoint as an
// alternative to the REST listing routes.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/upahaar/upahaar/app/catalog"
	"github.com/upahaar/upahaar/pkg/logger"
)

var ratingsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Ratings",
	Fields: graphql.Fields{
		"average": &graphql.Field{Type: graphql.Float},
		"count":   &graphql.Field{Type: graphql.Int},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"_id":        &graphql.Field{Type: graphql.ID},
		"title":      &graphql.Field{Type: graphql.String},
		"images":     &graphql.Field{Type: graphql.NewList(graphql.String)},
		"price":      &graphql.Field{Type: graphql.Float},
		"discount":   &graphql.Field{Type: graphql.Float},
		"finalPrice": &graphql.Field{Type: graphql.Float},
		"category":   &graphql.Field{Type: graphql.String},
		"brand":      &graphql.Field{Type: graphql.String},
		"stock":      &graphql.Field{Type: graphql.Int},
		"ratings":    &graphql.Field{Type: ratingsType},
	},
})

var paginationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Pagination",
	Fields: graphql.Fields{
		"total": &graphql.Field{Type: graphql.Int},
		"page":  &graphql.Field{Type: graphql.Int},
		"pages": &graphql.Field{Type: graphql.Int},
		"limit": &graphql.Field{Type: graphql.Int},
	},
})

var productPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductPage",
	Fields: graphql.Fields{
		"products":   &graphql.Field{Type: graphql.NewList(productType)},
		"pagination": &graphql.Field{Type: paginationType},
	},
})

var searchItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SearchItem",
	Fields: graphql.Fields{
		"_id":   &graphql.Field{Type: graphql.ID},
		"title": &graphql.Field{Type: graphql.String},
		"type":  &graphql.Field{Type: graphql.String},
	},
})

var searchResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SearchResult",
	Fields: graphql.Fields{
		"suggestions": &graphql.Field{Type: graphql.NewList(searchItemType)},
		"similar":     &graphql.Field{Type: graphql.NewList(searchItemType)},
	},
})

// NewSchema builds the catalogue query schema over store.
func NewSchema(store catalog.Store) (graphql.Schema, error) {
	executor := catalog.NewExecutor(store)
	autocomplete := catalog.NewAutocomplete(store)

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: productPageType,
				Args: graphql.FieldConfigArgument{
					"search":    &graphql.ArgumentConfig{Type: graphql.String},
					"category":  &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"brand":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"price":     &graphql.ArgumentConfig{Type: graphql.String},
					"sortBy":    &graphql.ArgumentConfig{Type: graphql.String},
					"sortOrder": &graphql.ArgumentConfig{Type: graphql.String},
					"page":      &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":     &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					params := catalog.ListParams{
						Search:     stringArg(p, "search"),
						Categories: stringListArg(p, "category"),
						Brands:     stringListArg(p, "brand"),
						Price:      stringArg(p, "price"),
						SortBy:     stringArg(p, "sortBy"),
						SortOrder:  stringArg(p, "sortOrder"),
						Page:       intArg(p, "page"),
						Limit:      intArg(p, "limit"),
					}
					pred, sortSpec, page := catalog.BuildFilter(params)
					return executor.List(p.Context, pred, sortSpec, page)
				},
			},
			"search": &graphql.Field{
				Type: searchResultType,
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return autocomplete.Search(p.Context, stringArg(p, "query"), intArg(p, "limit"))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}

// Handler serves POST requests carrying {"query":..., "variables":...}.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})
		if len(result.Errors) > 0 {
			logger.WithCtx(r.Context()).Warn("graphql query failed", "errors", result.Errors)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}

func stringArg(p graphql.ResolveParams, key string) string {
	if v, ok := p.Args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(p graphql.ResolveParams, key string) int {
	if v, ok := p.Args[key].(int); ok {
		return v
	}
	return 0
}

func stringListArg(p graphql.ResolveParams, key string) []string {
	raw, ok := p.Args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
