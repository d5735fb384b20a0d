package sqlite_test

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bjaus/dbintro"
	"github.com/bjaus/dbintro/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDriver(t *testing.T) {
	t.Parallel()
	assert.Contains(t, []string{"sqlite", "sqlite3"}, sqlite.DriverName())
	assert.Contains(t, []string{"purego", "cgo"}, sqlite.DriverType())
	assert.NotEmpty(t, sqlite.DriverPackage())
}

func TestGetVersion(t *testing.T) {
	t.Parallel()
	src := sqlite.NewSource(openMemory(t))
	v, err := src.GetVersion(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v, "3."), "unexpected version %q", v)
}

func TestGetIdentifiers(t *testing.T) {
	t.Parallel()
	db := openMemory(t)
	_, err := db.Exec(`PRAGMA application_id = 42; PRAGMA user_version = 7`)
	require.NoError(t, err)

	ids, err := sqlite.NewSource(db).GetIdentifiers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), ids.ApplicationID)
	assert.Equal(t, int64(7), ids.UserVersion)
}

func TestListFunctions(t *testing.T) {
	t.Parallel()
	fns, err := sqlite.NewSource(openMemory(t)).ListFunctions(context.Background())
	require.NoError(t, err)
	i := slices.IndexFunc(fns, func(f dbintro.Function) bool { return f.Name == "abs" })
	require.GreaterOrEqual(t, i, 0, "abs not registered")
	assert.Equal(t, int64(1), fns[i].Builtin)
	assert.Equal(t, int64(1), fns[i].ArgCount)
}

func TestListSettingsAndOptions(t *testing.T) {
	t.Parallel()
	src := sqlite.NewSource(openMemory(t))
	settings, err := src.ListSettings(context.Background())
	require.NoError(t, err)
	assert.Contains(t, settings, "user_version")

	opts, err := src.ListCompileOptions(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, opts)

	_, err = src.ListModules(context.Background())
	require.NoError(t, err)
}

func TestBuildFromDatabase(t *testing.T) {
	t.Parallel()
	r, err := dbintro.Build(context.Background(), sqlite.NewSource(openMemory(t)))
	require.NoError(t, err)
	require.Len(t, r.Sections, 6)
	assert.NotEmpty(t, r.Section(dbintro.SectionFunctions).Rows)
}

func TestClosedDatabase(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	src := sqlite.NewSource(db)

	tests := map[string]func() error{
		"version": func() error {
			_, err := src.GetVersion(context.Background())
			return err
		},
		"identifiers": func() error {
			_, err := src.GetIdentifiers(context.Background())
			return err
		},
		"modules": func() error {
			_, err := src.ListModules(context.Background())
			return err
		},
		"functions": func() error {
			_, err := src.ListFunctions(context.Background())
			return err
		},
	}
	for name, call := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := call()
			require.ErrorIs(t, err, dbintro.ErrSourceUnavailable)
			assert.Contains(t, err.Error(), name)
		})
	}

	out, err := dbintro.Generate(context.Background(), src)
	require.ErrorIs(t, err, dbintro.ErrSourceUnavailable)
	assert.Empty(t, out)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.DebugLevel)
	src := sqlite.NewSource(openMemory(t), sqlite.WithLogger(zap.New(core)))
	_, err := src.ListCompileOptions(context.Background())
	require.NoError(t, err)

	entries := logs.FilterField(zap.String("section", dbintro.SectionCompileOptions)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "metadata query", entries[0].Message)
}
