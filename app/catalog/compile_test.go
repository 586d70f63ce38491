package catalog_test

import (
	"testing"

	"github.com/upahaar/upahaar/app/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompileTextMatch(t *testing.T) {
	filter := catalog.Compile(catalog.TextMatch{
		Fields: []string{"title", "description"},
		Term:   "mug",
	})

	or, ok := filter["$or"].(bson.A)
	if !ok {
		t.Fatalf("expected $or clause, got %v", filter)
	}
	if len(or) != 2 {
		t.Fatalf("expected 2 field clauses, got %d", len(or))
	}
	re := or[0].(bson.M)["title"].(primitive.Regex)
	if re.Pattern != "mug" || re.Options != "i" {
		t.Errorf("unexpected regex %+v", re)
	}
}

func TestCompileQuotesMetacharacters(t *testing.T) {
	filter := catalog.Compile(catalog.TextMatch{Fields: []string{"title"}, Term: "a.b*"})
	re := filter["title"].(primitive.Regex)
	if re.Pattern != `a\.b\*` {
		t.Errorf("expected quoted pattern, got %q", re.Pattern)
	}
}

func TestCompileSetMembership(t *testing.T) {
	filter := catalog.Compile(catalog.SetMembership{
		Field:  "category",
		Values: []string{"Birthday", "Anniversary"},
	})

	in, ok := filter["category"].(bson.M)["$in"].(bson.A)
	if !ok {
		t.Fatalf("expected category $in, got %v", filter)
	}
	if len(in) != 2 {
		t.Errorf("expected 2 patterns, got %d", len(in))
	}
	if re := in[0].(primitive.Regex); re.Pattern != "Birthday" || re.Options != "i" {
		t.Errorf("unexpected regex %+v", re)
	}
}

func TestCompileRangeUnion(t *testing.T) {
	filter := catalog.Compile(catalog.RangeUnion{
		Field:  "price",
		Ranges: []catalog.Range{{Min: 100, Max: 200}, {Min: 500, Max: 600}},
	})

	or := filter["$or"].(bson.A)
	first := or[0].(bson.M)["price"].(bson.M)
	if first["$gte"] != 100.0 || first["$lte"] != 200.0 {
		t.Errorf("unexpected first range %v", first)
	}
}

func TestCompileSingleRangeHasNoOr(t *testing.T) {
	filter := catalog.Compile(catalog.RangeUnion{
		Field:  "price",
		Ranges: []catalog.Range{{Min: 100, Max: 200}},
	})
	if _, has := filter["$or"]; has {
		t.Errorf("single range should compile without $or: %v", filter)
	}
	if _, has := filter["price"]; !has {
		t.Errorf("expected price clause: %v", filter)
	}
}

func TestCompileEmptyRangeUnionMatchesNothing(t *testing.T) {
	filter := catalog.Compile(catalog.RangeUnion{Field: "price"})
	in, ok := filter["price"].(bson.M)["$in"].(bson.A)
	if !ok || len(in) != 0 {
		t.Errorf("expected empty $in (matches nothing), got %v", filter)
	}
}

func TestCompileConjunction(t *testing.T) {
	filter := catalog.Compile(catalog.Conjunction{Preds: []catalog.Predicate{
		catalog.TextMatch{Fields: []string{"title"}, Term: "mug"},
		catalog.SetMembership{Field: "brand", Values: []string{"Ferns"}},
	}})

	and, ok := filter["$and"].(bson.A)
	if !ok {
		t.Fatalf("expected $and, got %v", filter)
	}
	if len(and) != 2 {
		t.Errorf("expected 2 clauses, got %d", len(and))
	}
}

func TestCompileEmptyConjunctionMatchesEverything(t *testing.T) {
	filter := catalog.Compile(catalog.Conjunction{})
	if len(filter) != 0 {
		t.Errorf("expected empty filter, got %v", filter)
	}
}

func TestCompileExcludeIDs(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	filter := catalog.Compile(catalog.ExcludeIDs{IDs: ids})

	nin, ok := filter["_id"].(bson.M)["$nin"].([]primitive.ObjectID)
	if !ok || len(nin) != 2 {
		t.Errorf("expected $nin with 2 ids, got %v", filter)
	}
}

func TestCompileSort(t *testing.T) {
	d := catalog.CompileSort(catalog.Sort{Field: "createdAt", Descending: true})
	if d[0].Key != "createdAt" || d[0].Value != -1 {
		t.Errorf("unexpected sort doc %v", d)
	}
	d = catalog.CompileSort(catalog.Sort{Field: "price"})
	if d[0].Value != 1 {
		t.Errorf("expected ascending 1, got %v", d)
	}
}
