// Package dbintro renders a database engine's self-description as a text
// report.
//
// A [Source] answers six metadata queries: the engine version, the database
// identifiers, and the lists of loaded modules, recognized settings,
// compile-time options and registered functions. [Build] turns the answers
// into a [Report] of six [Section] values in that fixed order, and [Write] or
// [Marshal] render it:
//
//	r, err := dbintro.Build(ctx, src)
//	if err != nil { ... }
//	dbintro.Write(os.Stdout, dbintro.Box, r)
//
// [Generate] does both steps and returns the boxed text.
//
// # Box Layout
//
// The [Box] format draws every section as a fixed-width ASCII box. Column
// widths are declared per section and never derived from the content; a
// value wider than its column pushes the rest of its line to the right
// instead of being clipped:
//
//	.____________________.
//	|      version       |
//	|--------------------|
//	|3.46.0              |
//	______________________
//
// Sections with column headers (identifiers, functions) print a header line
// in place of the title. Every box ends with a blank line. Use [Layout] to
// change border characters or widths; [LoadLayout] reads one from YAML.
//
// # Other Formats
//
// [Markdown], [CSV], [TSV], [JSON], [YAML] and [HTML] render the same sections
// without the fixed-width constraint. Use [ParseFormat] to convert a CLI
// flag into a [Format].
//
// # Snapshots
//
// A [Snapshot] freezes a live source so the same report can be reproduced
// later. It implements [Source] and round-trips through YAML.
//
// # Errors
//
//   - [ErrSourceUnavailable] — a metadata query failed; no report is built
//   - [ErrMalformedRow] — a row does not fit its section; see [MalformedRowError]
//   - [ErrUnsupportedFormat] — unknown format string
//   - [ErrInvalidLayout] — bad border characters or width overrides
package dbintro
