package dbintro

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Layout configures the cosmetic parts of the boxed report. Widths maps a
// section name to replacement column widths; sections not listed keep their
// default widths.
type Layout struct {
	Border Border           `yaml:"border"`
	Widths map[string][]int `yaml:"widths"`
}

// DefaultLayout returns the compatibility layout.
func DefaultLayout() Layout {
	return Layout{Border: DefaultBorder()}
}

// LoadLayout decodes a YAML layout. Fields missing from the document keep
// their default values.
func LoadLayout(r io.Reader) (Layout, error) {
	l := DefaultLayout()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return Layout{}, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks border characters and width overrides.
func (l Layout) Validate() error {
	if err := l.Border.validate(); err != nil {
		return err
	}
	for name, widths := range l.Widths {
		idx := slices.IndexFunc(sectionDefs, func(s sectionDef) bool { return s.name == name })
		if idx < 0 {
			return fmt.Errorf("%w: unknown section %q", ErrInvalidLayout, name)
		}
		if want := len(sectionDefs[idx].columns); len(widths) != want {
			return fmt.Errorf("%w: section %q has %d columns, got %d widths", ErrInvalidLayout, name, want, len(widths))
		}
		for _, w := range widths {
			if w <= 0 {
				return fmt.Errorf("%w: section %q: width must be positive, got %d", ErrInvalidLayout, name, w)
			}
		}
	}
	return nil
}

func (l Layout) columns(def sectionDef) []Column {
	cols := slices.Clone(def.columns)
	if widths, ok := l.Widths[def.name]; ok {
		for i := range cols {
			cols[i].Width = widths[i]
		}
	}
	return cols
}
