package dbintro

import (
	"encoding/csv"
	"io"
)

// writeCSV writes one record per row, prefixed with the section name. Each
// section opens with a header record.
func writeCSV(w io.Writer, r *Report, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	for _, s := range r.Sections {
		if err := cw.Write(append([]string{"section"}, s.headers()...)); err != nil {
			return err
		}
		for _, row := range s.Rows {
			if err := cw.Write(append([]string{s.Name}, cellStrings(row)...)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
