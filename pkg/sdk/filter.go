package sdk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-bexpr"
)

// Filter selects records with a go-bexpr expression over their JSON field names,
// e.g. `status == "NEW"` or `assignedTo.email == "ana@example.com"`.
type Filter struct {
	expr      string
	evaluator *bexpr.Evaluator
}

// ParseFilter compiles expr. An empty expression yields a nil Filter matching everything.
func ParseFilter(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	evaluator, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	return &Filter{expr: expr, evaluator: evaluator}, nil
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Match reports whether record satisfies the filter. Records the expression cannot be
// evaluated against (e.g. a missing field) do not match.
func (f *Filter) Match(record any) bool {
	if f == nil {
		return true
	}
	datum, err := toDatum(record)
	if err != nil {
		return false
	}
	ok, err := f.evaluator.Evaluate(datum)
	if err != nil {
		return false
	}
	return ok
}

// Apply returns the records of items that match f, in order.
func Apply[T any](f *Filter, items []T) []T {
	if f == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// toDatum turns a record into the map form selectors address by JSON name.
func toDatum(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var datum map[string]any
	if err := json.Unmarshal(raw, &datum); err != nil {
		return nil, err
	}
	return datum, nil
}
