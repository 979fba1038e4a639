package gateway

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

type indexedDocument struct {
	doc    Document
	fields map[string]interface{}
}

// applyQuery filters, orders and limits docs in place of a query engine.
// Both gateways run it so they agree on ordering semantics.
func applyQuery(docs []Document, q Query) []Document {
	indexed := make([]indexedDocument, 0, len(docs))
	want := make(map[string]interface{}, len(q.Where))
	for k, v := range q.Where {
		want[k] = normalizeValue(v)
	}

	for _, d := range docs {
		fields := map[string]interface{}{}
		_ = json.Unmarshal(d.Data, &fields)
		if !matches(fields, want) {
			continue
		}
		indexed = append(indexed, indexedDocument{doc: d, fields: fields})
	}

	sort.SliceStable(indexed, func(i, j int) bool {
		a, b := indexed[i].doc, indexed[j].doc
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if q.OrderBy != "" {
		sort.SliceStable(indexed, func(i, j int) bool {
			c := compareValues(indexed[i].fields[q.OrderBy], indexed[j].fields[q.OrderBy])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && len(indexed) > q.Limit {
		indexed = indexed[:q.Limit]
	}

	out := make([]Document, len(indexed))
	for i, d := range indexed {
		out[i] = d.doc
	}
	return out
}

func matches(fields, want map[string]interface{}) bool {
	for k, v := range want {
		if !reflect.DeepEqual(fields[k], v) {
			return false
		}
	}
	return true
}

// compareValues orders decoded JSON values; missing values sort first
func compareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			at, errA := time.Parse(time.RFC3339Nano, av)
			bt, errB := time.Parse(time.RFC3339Nano, bv)
			if errA == nil && errB == nil {
				return at.Compare(bt)
			}
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
