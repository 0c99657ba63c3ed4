package docstore

import (
	"fmt"
	"sort"
)

// Filter is an equality constraint on a document field.
type Filter struct {
	Field string
	Value interface{}
}

// Query describes a collection read. Filters and ordering are applied
// client-side after scanning the collection; the table only indexes the
// collection path, so a filtered query still reads the whole collection.
// That keeps the store free of per-field index management at the cost of
// larger reads on big collections.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// QueryCollection returns the documents of a collection matching the query.
func (s *Store) QueryCollection(collection string, q Query) ([]Document, error) {
	if err := validatePath(collection, false); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT data FROM documents WHERE collection = ?", collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document in %s: %w", collection, err)
		}
		if matchesFilters(doc, q.Filters) {
			docs = append(docs, doc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			c := compareField(docs[i], docs[j], q.OrderBy)
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func matchesFilters(doc Document, filters []Filter) bool {
	for _, f := range filters {
		value, ok := doc[f.Field]
		if !ok || !valuesEqual(value, f.Value) {
			return false
		}
	}
	return true
}

// valuesEqual compares a stored field against a filter value. JSON decoding
// turns all numbers into float64, so numeric filter values are normalized
// before comparison.
func valuesEqual(stored, filter interface{}) bool {
	if sn, ok := toFloat(stored); ok {
		if fn, ok := toFloat(filter); ok {
			return sn == fn
		}
		return false
	}
	return stored == filter
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// compareField orders two documents by a field: numbers numerically, strings
// lexicographically. Documents missing the field sort first.
func compareField(a, b Document, field string) int {
	av, aok := a[field]
	bv, bok := b[field]
	if !aok && !bok {
		return 0
	}
	if !aok {
		return -1
	}
	if !bok {
		return 1
	}

	if an, ok := toFloat(av); ok {
		if bn, ok := toFloat(bv); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}

	as := fmt.Sprintf("%v", av)
	bs := fmt.Sprintf("%v", bv)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
