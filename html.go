package dbintro

import (
	"fmt"
	"html"
	"io"
)

func writeHTML(w io.Writer, r *Report) error {
	for _, s := range r.Sections {
		if err := writeHTMLSection(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeHTMLSection(w io.Writer, s *Section) error {
	if _, err := fmt.Fprintf(w, "<table id=%q>\n", s.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(s.Title)); err != nil {
		return err
	}

	if s.Headed() {
		if _, err := fmt.Fprintln(w, "  <thead>\n    <tr>"); err != nil {
			return err
		}
		for i, col := range s.Columns {
			if _, err := fmt.Fprintf(w, "      <th%s>%s</th>\n", alignStyle(s.Columns, i), html.EscapeString(col.Header)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>\n  </thead>"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range s.Rows {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for i, cell := range cellStrings(row) {
			if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", alignStyle(s.Columns, i), html.EscapeString(cell)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "  </tbody>\n</table>")
	return err
}

func alignStyle(cols []Column, i int) string {
	if i >= len(cols) {
		return ""
	}
	switch cols[i].Align {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
