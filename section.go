package dbintro

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// Row is one record returned by a metadata source. After a [Section] is
// built every cell is either a string or an int64.
type Row []any

// Column describes one fixed-width column of a section.
type Column struct {
	Header string    `json:"header,omitempty" yaml:"header,omitempty"`
	Width  int       `json:"width" yaml:"width"`
	Kind   Kind      `json:"kind" yaml:"kind"`
	Align  Alignment `json:"align" yaml:"align"`
}

// Section is one named block of the report. Sections are built once with
// [NewSection] and must not be modified afterwards.
type Section struct {
	Name    string   `json:"name" yaml:"name"`
	Title   string   `json:"title" yaml:"title"`
	Columns []Column `json:"columns" yaml:"columns"`
	Rows    []Row    `json:"rows" yaml:"rows"`
	SortKey []int    `json:"-" yaml:"-"`
}

// NewSection validates and normalizes rows against columns, then sorts them
// by sortKey. The sort is stable: rows with equal keys keep source order.
func NewSection(name, title string, columns []Column, sortKey []int, rows []Row) (*Section, error) {
	for _, k := range sortKey {
		if k < 0 || k >= len(columns) {
			return nil, fmt.Errorf("section %q: sort column %d out of range", name, k)
		}
	}
	out := make([]Row, len(rows))
	for i, row := range rows {
		norm, err := decodeRow(name, columns, row)
		if err != nil {
			return nil, err
		}
		out[i] = norm
	}
	if len(sortKey) > 0 {
		slices.SortStableFunc(out, func(a, b Row) int {
			for _, k := range sortKey {
				if c := compareCells(a[k], b[k]); c != 0 {
					return c
				}
			}
			return 0
		})
	}
	return &Section{
		Name:    name,
		Title:   title,
		Columns: slices.Clone(columns),
		Rows:    out,
		SortKey: slices.Clone(sortKey),
	}, nil
}

// Headed reports whether the section renders a header line instead of a
// title line.
func (s *Section) Headed() bool {
	for _, c := range s.Columns {
		if c.Header != "" {
			return true
		}
	}
	return false
}

// Widths returns the declared column widths.
func (s *Section) Widths() []int {
	widths := make([]int, len(s.Columns))
	for i, c := range s.Columns {
		widths[i] = c.Width
	}
	return widths
}

// headers returns the header labels, falling back to the title for a
// single untitled column.
func (s *Section) headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	if !s.Headed() && len(out) == 1 {
		out[0] = s.Title
	}
	return out
}

func decodeRow(section string, columns []Column, row Row) (Row, error) {
	if len(row) != len(columns) {
		return nil, &MalformedRowError{
			Section: section,
			Row:     row,
			Reason:  fmt.Sprintf("got %d cells, want %d", len(row), len(columns)),
		}
	}
	out := make(Row, len(row))
	for i, cell := range row {
		v, err := decodeCell(cell, columns[i].Kind)
		if err != nil {
			return nil, &MalformedRowError{
				Section: section,
				Row:     row,
				Reason:  fmt.Sprintf("column %d: %v", i, err),
			}
		}
		out[i] = v
	}
	return out, nil
}

func decodeCell(cell any, kind Kind) (any, error) {
	switch kind {
	case Integer:
		switch v := cell.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case string:
			return parseInt(v)
		case []byte:
			return parseInt(string(v))
		}
	default:
		switch v := cell.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case int:
			return strconv.Itoa(v), nil
		}
	}
	return nil, fmt.Errorf("cannot use %T as %s", cell, kind)
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

func compareCells(a, b any) int {
	if x, ok := a.(int64); ok {
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
