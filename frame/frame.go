// Package frame holds a small column-oriented table of string cells with
// the CSV decoding, group-by counting and sorting the s3count tool needs.
//
// The kernels split their work with the forkjoin package the same way a
// dataframe library splits it over a thread pool, so they run unchanged on
// the inline pool.
package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("frame: column not found")

	// ErrNoData is returned when the input has no header row.
	ErrNoData = errors.New("frame: no data")

	// ErrDuplicateColumn is returned when two header fields share a name.
	ErrDuplicateColumn = errors.New("frame: duplicate column name")
)

// Column is a named sequence of optional string cells.
type Column struct {
	name   string
	values []string
	valid  []bool
}

// Name returns the column name.
func (c *Column) Name() string {
	return c.name
}

// Len returns the number of cells.
func (c *Column) Len() int {
	return len(c.values)
}

// Value returns the cell at row i and whether it is non-null.
func (c *Column) Value(i int) (string, bool) {
	return c.values[i], c.valid[i]
}

// NullCount returns the number of null cells.
func (c *Column) NullCount() int {
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// Frame is an ordered set of equally long columns.
type Frame struct {
	columns []*Column
	index   map[string]int
}

func newFrame(columns []*Column) (*Frame, error) {
	f := &Frame{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, ok := f.index[c.name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		f.index[c.name] = i
	}
	return f, nil
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.name
	}
	return names
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.columns)
}

// Height returns the number of rows.
func (f *Frame) Height() int {
	if len(f.columns) == 0 {
		return 0
	}
	return f.columns[0].Len()
}

// Column returns the column called name.
func (f *Frame) Column(name string) (*Column, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrColumnNotFound, name, f.Names())
	}
	return f.columns[i], nil
}
