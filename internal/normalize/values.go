package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AsString converts scalars to a trimmed, non-empty string.
func AsString(v any) (string, bool) {
	switch typed := v.(type) {
	case string:
		s := strings.TrimSpace(typed)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case json.Number:
		return typed.String(), true
	default:
		return "", false
	}
}

// AsInt converts numbers and numeric strings to an int.
func AsInt(v any) (int, bool) {
	f, ok := AsFloat(v)
	if !ok {
		return 0, false
	}
	r := math.Round(f)
	if r < float64(math.MinInt) || r >= -float64(math.MinInt) {
		return 0, false
	}
	return int(r), true
}

// AsCount is AsInt restricted to non-negative values such as scores and records.
func AsCount(v any) (int, bool) {
	n, ok := AsInt(v)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// AsFloat converts numbers and numeric strings to a float64.
func AsFloat(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, !math.IsNaN(typed) && !math.IsInf(typed, 0)
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// AsBool accepts JSON booleans and "true"/"false" strings.
func AsBool(v any) (bool, bool) {
	switch typed := v.(type) {
	case bool:
		return typed, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(typed))
		return b, err == nil
	default:
		return false, false
	}
}

// AsMap returns v as a JSON object.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsList returns v as a JSON array.
func AsList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// Key renders an identifier as a comparable string so "1610612747" and 1610612747 match.
func Key(v any) string {
	s, _ := AsString(v)
	return s
}
