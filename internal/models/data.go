package models

import (
	"fmt"
)

// Column names the report pipeline depends on
const (
	ColumnID    = "id"
	ColumnValue = "Value"
	ColumnCode  = "code"
	ColumnMonth = "month"
)

// Table is an ordered collection of rows over a fixed, ordered column set.
// Rows keep the order in which they were read.
type Table struct {
	columns []string
	kinds   []Kind
	index   map[string]int
	rows    [][]Cell
}

// NewTable creates a table. Every row must have one cell per column.
func NewTable(columns []string, kinds []Kind, rows [][]Cell) (*Table, error) {
	if len(columns) != len(kinds) {
		return nil, fmt.Errorf("%d columns but %d column kinds", len(columns), len(kinds))
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, expected %d", i+1, len(row), len(columns))
		}
	}

	return &Table{
		columns: append([]string(nil), columns...),
		kinds:   append([]Kind(nil), kinds...),
		index:   index,
		rows:    rows,
	}, nil
}

// Columns returns the column names in file order
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the table has the named column
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Kind returns the inferred kind of the named column
func (t *Table) Kind(name string) (Kind, error) {
	i, ok := t.index[name]
	if !ok {
		return KindString, &MissingColumnError{Column: name}
	}
	return t.kinds[i], nil
}

// Column returns a copy of the named column's cells in row order
func (t *Table) Column(name string) ([]Cell, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}

	cells := make([]Cell, len(t.rows))
	for r, row := range t.rows {
		cells[r] = row[i]
	}
	return cells, nil
}

// NumericColumn is like Column but requires the column to hold numbers
func (t *Table) NumericColumn(name string) ([]Cell, error) {
	kind, err := t.Kind(name)
	if err != nil {
		return nil, err
	}
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if !kind.Numeric() && !allNull(cells) {
		return nil, fmt.Errorf("%w: column %q is %s, expected numeric values", ErrDataLoad, name, kind)
	}
	return cells, nil
}

func allNull(cells []Cell) bool {
	for _, c := range cells {
		if !c.Null {
			return false
		}
	}
	return true
}

// WithColumn returns a copy of the table with the named column replaced.
// The receiver is left untouched.
func (t *Table) WithColumn(name string, kind Kind, cells []Cell) (*Table, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	if len(cells) != len(t.rows) {
		return nil, fmt.Errorf("column %q: got %d cells for %d rows", name, len(cells), len(t.rows))
	}

	out := t.Clone()
	out.kinds[i] = kind
	for r := range out.rows {
		out.rows[r][i] = cells[r]
	}
	return out, nil
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	rows := make([][]Cell, len(t.rows))
	for r, row := range t.rows {
		rows[r] = append([]Cell(nil), row...)
	}

	index := make(map[string]int, len(t.index))
	for k, v := range t.index {
		index[k] = v
	}

	return &Table{
		columns: append([]string(nil), t.columns...),
		kinds:   append([]Kind(nil), t.kinds...),
		index:   index,
		rows:    rows,
	}
}

// Records returns one map per row keyed by column name, in row order.
// Values are int64, float64, string or nil for empty fields.
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, len(t.rows))
	for r, row := range t.rows {
		rec := make(map[string]any, len(t.columns))
		for i, name := range t.columns {
			rec[name] = row[i].Interface()
		}
		records[r] = rec
	}
	return records
}
