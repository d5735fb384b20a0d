package dbintro

import (
	"context"
	"errors"
	"fmt"
)

// Section names in report order.
const (
	SectionVersion        = "version"
	SectionIdentifiers    = "identifiers"
	SectionModules        = "modules"
	SectionSettings       = "settings"
	SectionCompileOptions = "compile_options"
	SectionFunctions      = "functions"
)

type sectionDef struct {
	name    string
	title   string
	columns []Column
	sortKey []int
}

var sectionDefs = []sectionDef{
	{
		name:    SectionVersion,
		title:   "version",
		columns: []Column{{Width: 20}},
	},
	{
		name:  SectionIdentifiers,
		title: "identifiers",
		columns: []Column{
			{Header: "application_id", Width: 20, Kind: Integer, Align: AlignRight},
			{Header: "user_version", Width: 20, Kind: Integer, Align: AlignRight},
			{Header: "schema_version", Width: 20, Kind: Integer, Align: AlignRight},
		},
	},
	{
		name:    SectionModules,
		title:   "modules",
		columns: []Column{{Width: 25}},
		sortKey: []int{0},
	},
	{
		name:    SectionSettings,
		title:   "settings",
		columns: []Column{{Width: 25}},
		sortKey: []int{0},
	},
	{
		name:    SectionCompileOptions,
		title:   "compile options",
		columns: []Column{{Width: 35}},
		sortKey: []int{0},
	},
	{
		name:  SectionFunctions,
		title: "functions",
		columns: []Column{
			{Header: "name", Width: 30},
			{Header: "b", Width: 1, Kind: Integer, Align: AlignRight},
			{Header: "type", Width: 4},
			{Header: "enc", Width: 7},
			{Header: "na", Width: 2, Kind: Integer, Align: AlignRight},
			{Header: "flags", Width: 7, Kind: Integer, Align: AlignRight},
		},
		sortKey: []int{0, 4},
	},
}

func defFor(name string) sectionDef {
	for _, s := range sectionDefs {
		if s.name == name {
			return s
		}
	}
	panic("dbintro: unknown section " + name)
}

// SectionNames returns the section names in report order.
func SectionNames() []string {
	names := make([]string, len(sectionDefs))
	for i, s := range sectionDefs {
		names[i] = s.name
	}
	return names
}

// Report is the ordered set of sections produced by one [Build].
type Report struct {
	Sections []*Section `json:"sections" yaml:"sections"`
	Border   Border     `json:"-" yaml:"-"`
}

// Section returns the named section, or nil.
func (r *Report) Section(name string) *Section {
	for _, s := range r.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Option configures [Build] and [Generate].
type Option func(*Layout)

// WithLayout replaces the default layout.
func WithLayout(l Layout) Option {
	return func(dst *Layout) { *dst = l }
}

// WithBorder overrides the box border characters.
func WithBorder(b Border) Option {
	return func(dst *Layout) { dst.Border = b }
}

// Build queries src for every section in report order and assembles the
// report. The first failing query aborts the build and no report is
// returned.
func Build(ctx context.Context, src Source, opts ...Option) (*Report, error) {
	layout := DefaultLayout()
	for _, opt := range opts {
		opt(&layout)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	rows, err := fetchRows(ctx, src)
	if err != nil {
		return nil, err
	}

	report := &Report{Border: layout.Border}
	for i, def := range sectionDefs {
		s, err := NewSection(def.name, def.title, layout.columns(def), def.sortKey, rows[i])
		if err != nil {
			return nil, err
		}
		report.Sections = append(report.Sections, s)
	}
	return report, nil
}

// Generate builds the report from src and renders it as boxed text.
func Generate(ctx context.Context, src Source, opts ...Option) ([]byte, error) {
	r, err := Build(ctx, src, opts...)
	if err != nil {
		return nil, err
	}
	return Marshal(Box, r)
}

func fetchRows(ctx context.Context, src Source) ([][]Row, error) {
	out := make([][]Row, 0, len(sectionDefs))

	version, err := src.GetVersion(ctx)
	if err != nil {
		return nil, sourceError(SectionVersion, err)
	}
	out = append(out, []Row{{version}})

	ids, err := src.GetIdentifiers(ctx)
	if err != nil {
		return nil, sourceError(SectionIdentifiers, err)
	}
	out = append(out, []Row{{ids.ApplicationID, ids.UserVersion, ids.SchemaVersion}})

	for _, list := range []struct {
		name string
		fn   func(context.Context) ([]string, error)
	}{
		{SectionModules, src.ListModules},
		{SectionSettings, src.ListSettings},
		{SectionCompileOptions, src.ListCompileOptions},
	} {
		names, err := list.fn(ctx)
		if err != nil {
			return nil, sourceError(list.name, err)
		}
		out = append(out, textRows(names))
	}

	funcs, err := src.ListFunctions(ctx)
	if err != nil {
		return nil, sourceError(SectionFunctions, err)
	}
	fnRows := make([]Row, len(funcs))
	for i, f := range funcs {
		fnRows[i] = Row{f.Name, f.Builtin, f.Kind, f.Encoding, f.ArgCount, f.Flags}
	}
	out = append(out, fnRows)

	return out, nil
}

func textRows(values []string) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{v}
	}
	return rows
}

func sourceError(section string, err error) error {
	if errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrMalformedRow) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, section, err)
}
