// Package sqlite adapts a SQLite connection to [dbintro.Source].
//
// The driver is chosen at build time:
//   - Default: pure Go modernc.org/sqlite
//   - With -tags cgo_sqlite: github.com/mattn/go-sqlite3
//
// Use [Open] instead of sql.Open so the matching driver name is used.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bjaus/dbintro"
)

const (
	queryVersion        = `SELECT sqlite_version()`
	queryApplicationID  = `PRAGMA application_id`
	queryUserVersion    = `PRAGMA user_version`
	querySchemaVersion  = `PRAGMA schema_version`
	queryModules        = `SELECT name FROM pragma_module_list()`
	querySettings       = `SELECT name FROM pragma_pragma_list()`
	queryCompileOptions = `SELECT compile_options FROM pragma_compile_options()`
	queryFunctions      = `SELECT name, builtin, type, enc, narg, flags FROM pragma_function_list()`
)

// DriverName returns the database/sql driver name in use.
func DriverName() string { return driverName }

// DriverType returns "cgo" for mattn/go-sqlite3 and "purego" for
// modernc.org/sqlite.
func DriverType() string { return driverType }

// DriverPackage returns the import path of the driver in use.
func DriverPackage() string { return driverPackage }

// Open opens a SQLite database with the compiled-in driver. The pool is
// limited to one connection so every query sees the same ":memory:" database.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Source answers [dbintro.Source] queries against a SQLite connection.
type Source struct {
	db  *sql.DB
	log *zap.Logger
}

var _ dbintro.Source = (*Source)(nil)

// Option configures a [Source].
type Option func(*Source)

// WithLogger sets the logger used for per-query debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSource wraps db. The caller keeps ownership of db.
func NewSource(db *sql.DB, opts ...Option) *Source {
	s := &Source{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) GetVersion(ctx context.Context) (string, error) {
	start := time.Now()
	var raw any
	if err := s.db.QueryRowContext(ctx, queryVersion).Scan(&raw); err != nil {
		return "", unavailable(dbintro.SectionVersion, err)
	}
	v, err := dbintro.DecodeText(dbintro.SectionVersion, []any{raw})
	if err != nil {
		return "", err
	}
	s.logQuery(dbintro.SectionVersion, 1, start)
	return v, nil
}

func (s *Source) GetIdentifiers(ctx context.Context) (dbintro.Identifiers, error) {
	start := time.Now()
	row := make([]any, 0, 3)
	for _, q := range []string{queryApplicationID, queryUserVersion, querySchemaVersion} {
		var v any
		if err := s.db.QueryRowContext(ctx, q).Scan(&v); err != nil {
			return dbintro.Identifiers{}, unavailable(dbintro.SectionIdentifiers, err)
		}
		row = append(row, v)
	}
	ids, err := dbintro.DecodeIdentifiers(row)
	if err != nil {
		return dbintro.Identifiers{}, err
	}
	s.logQuery(dbintro.SectionIdentifiers, 1, start)
	return ids, nil
}

func (s *Source) ListModules(ctx context.Context) ([]string, error) {
	return s.listText(ctx, dbintro.SectionModules, queryModules)
}

func (s *Source) ListSettings(ctx context.Context) ([]string, error) {
	return s.listText(ctx, dbintro.SectionSettings, querySettings)
}

func (s *Source) ListCompileOptions(ctx context.Context) ([]string, error) {
	return s.listText(ctx, dbintro.SectionCompileOptions, queryCompileOptions)
}

func (s *Source) ListFunctions(ctx context.Context) ([]dbintro.Function, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, queryFunctions)
	if err != nil {
		return nil, unavailable(dbintro.SectionFunctions, err)
	}
	defer rows.Close()

	var out []dbintro.Function
	for rows.Next() {
		raw := make([]any, 6)
		ptrs := make([]any, len(raw))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, unavailable(dbintro.SectionFunctions, err)
		}
		fn, err := dbintro.DecodeFunction(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, fn)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(dbintro.SectionFunctions, err)
	}
	s.logQuery(dbintro.SectionFunctions, len(out), start)
	return out, nil
}

func (s *Source) listText(ctx context.Context, section, query string) ([]string, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, unavailable(section, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var raw any
		if err := rows.Scan(&raw); err != nil {
			return nil, unavailable(section, err)
		}
		v, err := dbintro.DecodeText(section, []any{raw})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(section, err)
	}
	s.logQuery(section, len(out), start)
	return out, nil
}

func (s *Source) logQuery(section string, rows int, start time.Time) {
	s.log.Debug("metadata query",
		zap.String("section", section),
		zap.Int("rows", rows),
		zap.Duration("elapsed", time.Since(start)))
}

func unavailable(section string, err error) error {
	return fmt.Errorf("%w: %s: %w", dbintro.ErrSourceUnavailable, section, err)
}
