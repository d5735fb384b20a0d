package dbintro

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrSourceUnavailable = errors.New("metadata source unavailable")
	ErrMalformedRow      = errors.New("malformed row")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidLayout     = errors.New("invalid layout")
)

// MalformedRowError reports a row that violates its section's column shape.
// It unwraps to [ErrMalformedRow].
type MalformedRowError struct {
	Section string
	Row     []any
	Reason  string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: section %q: %s: %v", ErrMalformedRow, e.Section, e.Reason, e.Row)
}

func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

// Format represents an output format.
type Format string

const (
	Box      Format = "box"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	JSON     Format = "json"
	YAML     Format = "yaml"
	HTML     Format = "html"
)

var formats = []Format{Box, Markdown, CSV, TSV, JSON, YAML, HTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string. The empty string selects [Box].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return Box, nil
	}
	for _, f := range formats {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Alignment controls cell text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Kind is the declared type of every cell in a column.
type Kind int

const (
	Text Kind = iota
	Integer
)

func (k Kind) String() string {
	if k == Integer {
		return "integer"
	}
	return "text"
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Write renders the report in format f and writes it to w. The whole report
// is rendered before anything is written, so w never sees partial output.
func Write(w io.Writer, f Format, r *Report) error {
	data, err := Marshal(f, r)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal renders the report in format f and returns the bytes.
func Marshal(f Format, r *Report) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case Box:
		err = writeBoxes(&buf, r)
	case Markdown:
		err = writeMarkdown(&buf, r)
	case CSV:
		err = writeCSV(&buf, r, ',')
	case TSV:
		err = writeCSV(&buf, r, '\t')
	case JSON:
		err = writeJSON(&buf, r)
	case YAML:
		err = writeYAML(&buf, r)
	case HTML:
		err = writeHTML(&buf, r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
