// Package scores provides the tabular representation of learning-curve scores.
package scores

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xtgo/set"
)

// Column names of a score file.
const (
	TrainingSize = "tr_size"
	Set          = "set"
	Metric       = "metric"
	Score        = "score"
	Split        = "split"
)

// TestSet is the label of rows scored on held-out data.
const TestSet = "te"

var (
	// ErrSchemaMismatch is returned when concatenating tables with different columns.
	ErrSchemaMismatch = errors.New("tables have different columns")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing column")
)

// Row is a single record of a table, ordered by the table header.
type Row []string

// Table is an ordered collection of rows sharing a header.
type Table struct {
	header []string
	index  map[string]int
	rows   []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(header ...string) (*Table, error) {
	t := &Table{
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		if _, ok := t.index[h]; ok {
			return nil, errors.Errorf("duplicate column %q", h)
		}
		t.header[i] = h
		t.index[h] = i
	}
	return t, nil
}

// Header returns a copy of the column names.
func (t *Table) Header() []string {
	h := make([]string, len(t.header))
	copy(h, t.header)
	return h
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Has reports whether the table has the column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Require checks that every named column exists.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if !t.Has(c) {
			return errors.Wrap(ErrMissingColumn, c)
		}
	}
	return nil
}

// Value returns the cell of row i in the column.
func (t *Table) Value(i int, column string) string {
	j, ok := t.index[column]
	if !ok {
		return ""
	}
	return t.rows[i][j]
}

// Float parses the cell of row i in the column.
func (t *Table) Float(i int, column string) (float64, error) {
	if !t.Has(column) {
		return 0, errors.Wrap(ErrMissingColumn, column)
	}
	v, err := strconv.ParseFloat(t.Value(i, column), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "row %d column %s", i+1, column)
	}
	return v, nil
}

// Floats parses every cell of the column.
func (t *Table) Floats(column string) ([]float64, error) {
	v := make([]float64, len(t.rows))
	for i := range t.rows {
		f, err := t.Float(i, column)
		if err != nil {
			return nil, err
		}
		v[i] = f
	}
	return v, nil
}

// Append adds a row; the row must have one cell per column.
func (t *Table) Append(r Row) error {
	if len(r) != len(t.header) {
		return errors.Errorf("row has %d fields, expected %d", len(r), len(t.header))
	}
	t.rows = append(t.rows, r)
	return nil
}

// WithColumn returns a copy of the table where the column holds value in
// every row. An existing column of that name is overwritten, otherwise the
// column is appended.
func (t *Table) WithColumn(column, value string) *Table {
	header := t.Header()
	j, ok := t.index[column]
	if !ok {
		header = append(header, column)
		j = len(header) - 1
	}
	c, _ := NewTable(header...)
	c.rows = make([]Row, len(t.rows))
	for i, r := range t.rows {
		n := make(Row, len(header))
		copy(n, r)
		n[j] = value
		c.rows[i] = n
	}
	return c
}

// Filter returns the rows whose column equals value.
func (t *Table) Filter(column, value string) *Table {
	j, ok := t.index[column]
	return t.Where(func(r Row) bool {
		return ok && r[j] == value
	})
}

// Where returns the rows satisfying keep.
func (t *Table) Where(keep func(Row) bool) *Table {
	c, _ := NewTable(t.header...)
	for _, r := range t.rows {
		if keep(r) {
			c.rows = append(c.rows, r)
		}
	}
	return c
}

// SortStable orders the rows in place, keeping the order of equal rows.
func (t *Table) SortStable(less func(a, b Row) bool) {
	sort.SliceStable(t.rows, func(i, j int) bool {
		return less(t.rows[i], t.rows[j])
	})
}

// Index returns the position of the column, or -1.
func (t *Table) Index(column string) int {
	if j, ok := t.index[column]; ok {
		return j
	}
	return -1
}

// Sizes returns the distinct training set sizes in ascending order.
func (t *Table) Sizes() ([]float64, error) {
	v, err := t.Floats(TrainingSize)
	if err != nil {
		return nil, err
	}
	sort.Float64s(v)
	n := set.Uniq(sort.Float64Slice(v))
	return v[:n], nil
}

// Concat joins tables row-wise. Every table must have the same set of
// columns; rows are reordered to the header of the first table.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, errors.New("no tables to concatenate")
	}
	c, err := NewTable(tables[0].header...)
	if err != nil {
		return nil, err
	}
	for k, t := range tables {
		if len(t.header) != len(c.header) {
			return nil, errors.Wrapf(ErrSchemaMismatch, "table %d has columns %v, expected %v", k, t.header, c.header)
		}
		perm := make([]int, len(c.header))
		for i, h := range c.header {
			j, ok := t.index[h]
			if !ok {
				return nil, errors.Wrapf(ErrSchemaMismatch, "table %d has columns %v, expected %v", k, t.header, c.header)
			}
			perm[i] = j
		}
		for _, r := range t.rows {
			n := make(Row, len(perm))
			for i, j := range perm {
				n[i] = r[j]
			}
			c.rows = append(c.rows, n)
		}
	}
	return c, nil
}
