package catalog

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile translates a Predicate into a MongoDB filter document.
// User-supplied terms are quoted so regex metacharacters match literally.
func Compile(p Predicate) bson.M {
	switch v := p.(type) {
	case TextMatch:
		return compileTextMatch(v)
	case SetMembership:
		return compileSetMembership(v)
	case RangeUnion:
		return compileRangeUnion(v)
	case ExcludeIDs:
		return bson.M{"_id": bson.M{"$nin": v.IDs}}
	case Conjunction:
		return compileJunction("$and", v.Preds)
	case Disjunction:
		return compileJunction("$or", v.Preds)
	default:
		return bson.M{}
	}
}

// containsPattern builds a case-insensitive substring regex for term.
func containsPattern(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func compileTextMatch(m TextMatch) bson.M {
	if m.Term == "" || len(m.Fields) == 0 {
		return bson.M{}
	}
	pattern := containsPattern(m.Term)
	clauses := make(bson.A, 0, len(m.Fields))
	for _, f := range m.Fields {
		clauses = append(clauses, bson.M{f: pattern})
	}
	if len(clauses) == 1 {
		return clauses[0].(bson.M)
	}
	return bson.M{"$or": clauses}
}

func compileSetMembership(m SetMembership) bson.M {
	if len(m.Values) == 0 {
		return bson.M{}
	}
	patterns := make(bson.A, 0, len(m.Values))
	for _, v := range m.Values {
		patterns = append(patterns, containsPattern(v))
	}
	return bson.M{m.Field: bson.M{"$in": patterns}}
}

func compileRangeUnion(u RangeUnion) bson.M {
	if len(u.Ranges) == 0 {
		// Every supplied sub-range was unparseable; the union matches nothing.
		return bson.M{u.Field: bson.M{"$in": bson.A{}}}
	}
	clauses := make(bson.A, 0, len(u.Ranges))
	for _, r := range u.Ranges {
		clauses = append(clauses, bson.M{u.Field: bson.M{"$gte": r.Min, "$lte": r.Max}})
	}
	if len(clauses) == 1 {
		return clauses[0].(bson.M)
	}
	return bson.M{"$or": clauses}
}

func compileJunction(op string, preds []Predicate) bson.M {
	clauses := make(bson.A, 0, len(preds))
	for _, p := range preds {
		c := Compile(p)
		if len(c) == 0 {
			continue
		}
		clauses = append(clauses, c)
	}
	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0].(bson.M)
	default:
		return bson.M{op: clauses}
	}
}

// CompileSort translates a Sort into a MongoDB sort document.
func CompileSort(s Sort) bson.D {
	dir := 1
	if s.Descending {
		dir = -1
	}
	return bson.D{{Key: s.Field, Value: dir}}
}
