package store

import (
	"reflect"
	"sort"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type Operator string

const (
	OpEq     Operator = "$eq"
	OpNe     Operator = "$ne"
	OpGt     Operator = "$gt"
	OpGte    Operator = "$gte"
	OpLt     Operator = "$lt"
	OpLte    Operator = "$lte"
	OpIn     Operator = "$in"
	OpExists Operator = "$exists"
	OpAnd    Operator = "$and"
	OpOr     Operator = "$or"
	OpNot    Operator = "$nor"
)

// Filter is a predicate over document fields. Leaf filters compare one field
// against a value, group filters combine children. The zero Filter matches
// every document.
type Filter struct {
	Field    string
	Op       Operator
	Value    any
	Children []Filter
}

func Eq(field string, value any) Filter  { return Filter{Field: field, Op: OpEq, Value: value} }
func Ne(field string, value any) Filter  { return Filter{Field: field, Op: OpNe, Value: value} }
func Gt(field string, value any) Filter  { return Filter{Field: field, Op: OpGt, Value: value} }
func Gte(field string, value any) Filter { return Filter{Field: field, Op: OpGte, Value: value} }
func Lt(field string, value any) Filter  { return Filter{Field: field, Op: OpLt, Value: value} }
func Lte(field string, value any) Filter { return Filter{Field: field, Op: OpLte, Value: value} }

// In matches documents whose field equals any of values. Without values it
// matches nothing.
func In[V any](field string, values ...V) Filter {
	if values == nil {
		values = []V{}
	}

	return Filter{Field: field, Op: OpIn, Value: values}
}

func Exists(field string, exists bool) Filter {
	return Filter{Field: field, Op: OpExists, Value: exists}
}

// ByID matches the document whose key equals id.
func ByID(id uuid.UUID) Filter {
	return Eq(KeyField, id)
}

// All matches every document.
func All() Filter {
	return Filter{}
}

func And(filters ...Filter) Filter {
	return group(OpAnd, filters)
}

func Or(filters ...Filter) Filter {
	return group(OpOr, filters)
}

// Not matches documents that match none of the given filters. Zero filters
// are dropped; when none remain, Not matches every document.
func Not(filters ...Filter) Filter {
	children := sliceFilter(filters, func(f Filter) bool {
		return !f.IsZero()
	})

	if len(children) == 0 {
		return Filter{}
	}

	return Filter{Op: OpNot, Children: children}
}

func group(op Operator, filters []Filter) Filter {
	children := sliceFilter(filters, func(f Filter) bool {
		return !f.IsZero()
	})

	switch len(children) {
	case 0:
		return Filter{}
	case 1:
		return children[0]
	}

	return Filter{Op: op, Children: children}
}

// And returns f combined with others, all of which must match.
func (f Filter) And(others ...Filter) Filter {
	return And(append([]Filter{f}, others...)...)
}

// Or returns f combined with others, any of which may match.
func (f Filter) Or(others ...Filter) Filter {
	return Or(append([]Filter{f}, others...)...)
}

func (f Filter) IsZero() bool {
	return f.Field == "" && f.Op == "" && len(f.Children) == 0
}

// BSON renders the filter as a query document.
func (f Filter) BSON() bson.D {
	if f.IsZero() {
		return bson.D{}
	}

	switch f.Op {
	case OpAnd, OpOr, OpNot:
		children := sliceMap(f.Children, func(c Filter) any {
			return c.BSON()
		})
		return bson.D{{Key: string(f.Op), Value: bson.A(children)}}
	case OpEq, "":
		return bson.D{{Key: f.Field, Value: f.Value}}
	}

	return bson.D{{Key: f.Field, Value: bson.D{{Key: string(f.Op), Value: f.Value}}}}
}

// FromMap builds an equality filter from field/value pairs. A slice value with
// more than one element matches any of its elements, a single element slice
// matches that element, an empty slice is ignored. Keys are sorted so the
// resulting query is deterministic.
func FromMap(filterMap map[string]any) Filter {
	keys := make([]string, 0, len(filterMap))
	for k := range filterMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var filters []Filter
	for _, k := range keys {
		v := filterMap[k]
		vval := reflect.ValueOf(v)
		if vval.Kind() != reflect.Slice || vval.Type().Elem().Kind() == reflect.Uint8 {
			filters = append(filters, Eq(k, v))
			continue
		}

		switch vval.Len() {
		case 0:
			continue
		case 1:
			filters = append(filters, Eq(k, vval.Index(0).Interface()))
		default:
			filters = append(filters, Filter{Field: k, Op: OpIn, Value: v})
		}
	}

	return And(filters...)
}
