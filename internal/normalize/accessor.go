package normalize

import (
	"strconv"
	"strings"
)

// Accessor reads one candidate value out of a raw record.
type Accessor func(node any) (any, bool)

// Chain is an ordered list of accessors for one logical field. The first present,
// non-null value wins.
type Chain []Accessor

// Path walks object keys; a numeric segment indexes into an array.
func Path(keys ...string) Accessor {
	return func(node any) (any, bool) {
		cur := node
		for _, key := range keys {
			switch typed := cur.(type) {
			case map[string]any:
				next, ok := typed[key]
				if !ok {
					return nil, false
				}
				cur = next
			case []any:
				idx, err := strconv.Atoi(key)
				if err != nil || idx < 0 || idx >= len(typed) {
					return nil, false
				}
				cur = typed[idx]
			default:
				return nil, false
			}
		}
		if cur == nil {
			return nil, false
		}
		return cur, true
	}
}

// Join concatenates the string parts that are present, e.g. first + last name.
func Join(sep string, parts ...Accessor) Accessor {
	return func(node any) (any, bool) {
		var out []string
		for _, part := range parts {
			v, ok := part(node)
			if !ok {
				continue
			}
			if s, ok := AsString(v); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return strings.Join(out, sep), true
	}
}

// Find returns the first element of the array at path whose field equals one of values
// (case-insensitive).
func Find(path Accessor, field string, values ...string) Accessor {
	return func(node any) (any, bool) {
		raw, ok := path(node)
		if !ok {
			return nil, false
		}
		list, ok := AsList(raw)
		if !ok {
			return nil, false
		}
		for _, item := range list {
			obj, ok := AsMap(item)
			if !ok {
				continue
			}
			got, ok := AsString(obj[field])
			if !ok {
				continue
			}
			for _, want := range values {
				if strings.EqualFold(got, want) {
					return obj, true
				}
			}
		}
		return nil, false
	}
}

// Then applies next to the value produced by first.
func Then(first Accessor, next Accessor) Accessor {
	return func(node any) (any, bool) {
		v, ok := first(node)
		if !ok {
			return nil, false
		}
		return next(v)
	}
}

// Resolve returns the first present value.
func (c Chain) Resolve(node any) (any, bool) {
	for _, acc := range c {
		if acc == nil {
			continue
		}
		if v, ok := acc(node); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// First returns the first value that convert accepts.
func First[T any](c Chain, node any, convert func(any) (T, bool)) (T, bool) {
	for _, acc := range c {
		if acc == nil {
			continue
		}
		v, ok := acc(node)
		if !ok || v == nil {
			continue
		}
		if out, ok := convert(v); ok {
			return out, true
		}
	}
	var zero T
	return zero, false
}

// String resolves a non-empty string or returns def.
func (c Chain) String(node any, def string) string {
	if s, ok := First(c, node, AsString); ok {
		return s
	}
	return def
}

// Int resolves a number or returns def.
func (c Chain) Int(node any, def int) int {
	if n, ok := First(c, node, AsInt); ok {
		return n
	}
	return def
}

// Count resolves a non-negative number or returns def.
func (c Chain) Count(node any, def int) int {
	if n, ok := First(c, node, AsCount); ok {
		return n
	}
	return def
}

// IntPtr resolves a number or returns nil.
func (c Chain) IntPtr(node any) *int {
	if n, ok := First(c, node, AsInt); ok {
		return &n
	}
	return nil
}

// List resolves the first array value.
func (c Chain) List(node any) ([]any, bool) {
	return First(c, node, AsList)
}

// Paths is shorthand for a chain of dotted paths: Paths("team.id", "teamId").
func Paths(paths ...string) Chain {
	chain := make(Chain, 0, len(paths))
	for _, p := range paths {
		chain = append(chain, Path(strings.Split(p, ".")...))
	}
	return chain
}
