package dbintro

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Border holds the characters used to draw a box.
type Border struct {
	TopCorner    string `yaml:"top_corner"`
	Top          string `yaml:"top"`
	Side         string `yaml:"side"`
	Rule         string `yaml:"rule"`
	BottomCorner string `yaml:"bottom_corner"`
	Bottom       string `yaml:"bottom"`
}

// DefaultBorder returns the border of the compatibility layout:
//
//	.______.
//	| title|
//	|------|
//	|row   |
//	________
func DefaultBorder() Border {
	return Border{
		TopCorner:    ".",
		Top:          "_",
		Side:         "|",
		Rule:         "-",
		BottomCorner: "_",
		Bottom:       "_",
	}
}

func (b Border) validate() error {
	for name, s := range map[string]string{
		"top_corner":    b.TopCorner,
		"top":           b.Top,
		"side":          b.Side,
		"rule":          b.Rule,
		"bottom_corner": b.BottomCorner,
		"bottom":        b.Bottom,
	} {
		if runewidth.StringWidth(s) != 1 {
			return fmt.Errorf("%w: border %s must be one column wide, got %q", ErrInvalidLayout, name, s)
		}
	}
	return nil
}

func writeBoxes(w io.Writer, r *Report) error {
	for _, s := range r.Sections {
		if err := renderBox(w, s, r.Border); err != nil {
			return err
		}
	}
	return nil
}

// renderBox draws one section followed by a blank separator line. Empty
// sections still get their borders, heading and rule.
func renderBox(w io.Writer, s *Section, bc Border) error {
	widths := s.Widths()
	inner := boxInnerWidth(widths)

	if err := drawHLine(w, inner, bc.TopCorner, bc.Top); err != nil {
		return err
	}
	if s.Headed() {
		headers := s.headers()
		cells := make([]string, len(widths))
		for i, width := range widths {
			cells[i] = alignCell(headers[i], width, AlignCenter)
		}
		if err := drawCells(w, cells, bc.Side); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", bc.Side, alignCell(s.Title, inner, AlignCenter), bc.Side); err != nil {
			return err
		}
	}
	if err := drawHLine(w, inner, bc.Side, bc.Rule); err != nil {
		return err
	}
	for _, row := range s.Rows {
		cells := make([]string, len(s.Columns))
		for i, col := range s.Columns {
			cells[i] = formatCell(row[i], col)
		}
		if err := drawCells(w, cells, bc.Side); err != nil {
			return err
		}
	}
	if err := drawHLine(w, inner, bc.BottomCorner, bc.Bottom); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// boxInnerWidth returns the width between the outer side borders: every
// column plus one separator between adjacent columns.
func boxInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, inner int, corner, fill string) error {
	_, err := fmt.Fprintln(w, corner+strings.Repeat(fill, inner)+corner)
	return err
}

func drawCells(w io.Writer, cells []string, side string) error {
	var sb strings.Builder
	sb.WriteString(side)
	for _, cell := range cells {
		sb.WriteString(cell)
		sb.WriteString(side)
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// formatCell pads a cell to the column width. Integers are signed decimal
// and right-aligned. Values wider than the column are never clipped.
func formatCell(cell any, col Column) string {
	switch v := cell.(type) {
	case int64:
		return alignCell(strconv.FormatInt(v, 10), col.Width, AlignRight)
	case string:
		return alignCell(v, col.Width, col.Align)
	default:
		return alignCell(fmt.Sprint(v), col.Width, col.Align)
	}
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
