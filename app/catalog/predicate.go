// Package catalog implements the product catalogue query pipeline: a
// storage-independent predicate model, a builder that translates raw query
// parameters into predicates, an executor that runs them against the catalog
// store, and the autocomplete/similarity engine.
package catalog

import "go.mongodb.org/mongo-driver/bson/primitive"

// Predicate describes which products match a query, independent of the
// storage engine's native syntax. Variants are combined with Conjunction
// and Disjunction and compiled by Compile.
type Predicate interface {
	isPredicate()
}

// TextMatch matches products where ANY of Fields contains Term as a
// case-insensitive substring.
type TextMatch struct {
	Fields []string
	Term   string
}

// SetMembership matches products whose Field case-insensitively contains any
// of Values.
type SetMembership struct {
	Field  string
	Values []string
}

// Range is a closed numeric interval. Ranges with unparseable bounds are
// never constructed; see ParsePriceRanges.
type Range struct {
	Min float64
	Max float64
}

// RangeUnion matches products whose numeric Field falls inside ANY of Ranges
// (inclusive bounds). An empty union matches nothing.
type RangeUnion struct {
	Field  string
	Ranges []Range
}

// ExcludeIDs matches products whose identifier is NOT in IDs.
type ExcludeIDs struct {
	IDs []primitive.ObjectID
}

// Conjunction matches products satisfying every inner predicate.
// An empty conjunction matches everything.
type Conjunction struct {
	Preds []Predicate
}

// Disjunction matches products satisfying at least one inner predicate.
type Disjunction struct {
	Preds []Predicate
}

func (TextMatch) isPredicate()     {}
func (SetMembership) isPredicate() {}
func (RangeUnion) isPredicate()    {}
func (ExcludeIDs) isPredicate()    {}
func (Conjunction) isPredicate()   {}
func (Disjunction) isPredicate()   {}

// Sort is the ordering specification for a catalogue query.
// Ties between equal sort keys are broken in storage-natural order.
type Sort struct {
	Field      string
	Descending bool
}

// Page is a 1-indexed pagination window.
type Page struct {
	Number int
	Size   int
}

// Skip returns the number of documents to skip for this page.
func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Size)
}
