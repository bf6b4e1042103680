package normalize

import "strings"

var rowChain = Chain{Path("rowSet"), Path("rows")}

// Table is a column-indexed result set: {name, headers: [...], rowSet: [[...]]}.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Column locates a logical column. Header names are matched case-insensitively; when
// none match, legacy is used as the positional index (negative means "not available").
func (t Table) Column(legacy int, names ...string) int {
	for i, h := range t.Headers {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return legacy
}

// Cell returns the value at col in row, or nil when out of range.
func Cell(row []any, col int) any {
	if col < 0 || col >= len(row) {
		return nil
	}
	return row[col]
}

// Tables reads the tabular result sets from a payload. It accepts "resultSets" or the
// singular "resultSet", each either a list or a single object.
func Tables(doc any) []Table {
	raw, ok := Chain{Path("resultSets"), Path("resultSet")}.Resolve(doc)
	if !ok {
		return nil
	}
	var items []any
	switch typed := raw.(type) {
	case []any:
		items = typed
	case map[string]any:
		items = []any{typed}
	default:
		return nil
	}

	out := make([]Table, 0, len(items))
	for _, item := range items {
		obj, ok := AsMap(item)
		if !ok {
			out = append(out, Table{})
			continue
		}
		t := Table{Name: Paths("name").String(obj, "")}
		if headers, ok := AsList(obj["headers"]); ok {
			for _, h := range headers {
				s, _ := AsString(h)
				t.Headers = append(t.Headers, s)
			}
		}
		if rows, ok := rowChain.List(obj); ok {
			for _, r := range rows {
				if cells, ok := AsList(r); ok {
					t.Rows = append(t.Rows, cells)
				}
			}
		}
		out = append(out, t)
	}
	return out
}

// FindTable returns the table called name. Unnamed tables from older payloads are
// matched by position.
func FindTable(tables []Table, name string, position int) (Table, bool) {
	for _, t := range tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	if position >= 0 && position < len(tables) && tables[position].Name == "" {
		return tables[position], true
	}
	return Table{}, false
}
