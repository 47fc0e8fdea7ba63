package main

import "fmt"

// AnalysisResult is the parsed model reply. The model is an untrusted
// text-in/text-out service, so the result stays a generic map and every
// access goes through a defaulted accessor.
type AnalysisResult map[string]any

const missingField = "N/A"

// Field returns the value under key rendered as display text, or "N/A"
// when the key is absent.
func (r AnalysisResult) Field(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return missingField
	}
	return formatValue(v)
}

// List returns the slice under key, or nil when absent or not a list.
func (r AnalysisResult) List(key string) []any {
	v, ok := r[key].([]any)
	if !ok {
		return nil
	}
	return v
}

func (r AnalysisResult) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// mapField reads key from a list entry that decoded as an object,
// falling back like the other accessors.
func mapField(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	return formatValue(v)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		// JSON numbers decode to float64; %v prints integral values
		// without a trailing ".0".
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprintf("%v", v)
	}
}
