package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/tablegen/internal/config"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/schema"
)

type fakeLister struct {
	tables []string
	err    error
	events *[]string
}

func (f *fakeLister) TableNames(ctx context.Context) ([]string, error) {
	if f.events != nil {
		*f.events = append(*f.events, "list")
	}
	return f.tables, f.err
}

type fakeIntrospector struct {
	received []string
	err      error
	events   *[]string
}

func (f *fakeIntrospector) TypeDeclarations(ctx context.Context, tables []string) (string, error) {
	if f.events != nil {
		*f.events = append(*f.events, "introspect")
	}
	f.received = tables
	if f.err != nil {
		return "", f.err
	}

	infos := make([]schema.TableInfo, len(tables))
	for i, name := range tables {
		infos[i] = schema.TableInfo{
			Name: name,
			Columns: []schema.ColumnInfo{
				{Name: "id", DataType: "int", IsPrimaryKey: true},
			},
		}
	}
	return RenderTables(infos), nil
}

func testConfig() *config.Config {
	cfg := &config.Config{Client: "mysql"}
	cfg.Connection = config.Connection{
		Host: "h", Port: 3306, User: "u", Password: "p", Database: "d",
	}
	return cfg
}

func TestRun_WritesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	tablesPath := filepath.Join(dir, "db-tables.ts")
	indexPath := filepath.Join(dir, "db-tables-index.ts")

	intro := &fakeIntrospector{}
	err := Run(context.Background(), Options{
		Config:       testConfig(),
		TablesPath:   tablesPath,
		IndexPath:    indexPath,
		Lister:       &fakeLister{tables: []string{"posts", "users"}},
		Introspector: intro,
	})
	require.NoError(t, err)

	declarations, err := os.ReadFile(tablesPath)
	require.NoError(t, err)
	assert.Contains(t, string(declarations), "export interface Posts {")
	assert.Contains(t, string(declarations), "export interface Users {")

	index, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Contains(t, string(index), "  posts: dbt.Posts;\n")
	assert.Contains(t, string(index), "  users: dbt.Users;\n")
	assert.Contains(t, string(index), `export type TableName = "posts" | "users";`)
	assert.Contains(t, string(index), "import * as dbt from './db-tables';")
}

func TestRun_SortsAndDeduplicatesTableNames(t *testing.T) {
	dir := t.TempDir()

	intro := &fakeIntrospector{}
	err := Run(context.Background(), Options{
		Config:       testConfig(),
		TablesPath:   filepath.Join(dir, "db-tables.ts"),
		IndexPath:    filepath.Join(dir, "db-tables-index.ts"),
		Lister:       &fakeLister{tables: []string{"users", "posts", "users"}},
		Introspector: intro,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"posts", "users"}, intro.received)
}

func TestRun_MetadataFetchPrecedesIntrospection(t *testing.T) {
	dir := t.TempDir()
	var events []string

	err := Run(context.Background(), Options{
		Config:       testConfig(),
		TablesPath:   filepath.Join(dir, "db-tables.ts"),
		IndexPath:    filepath.Join(dir, "db-tables-index.ts"),
		Lister:       &fakeLister{tables: []string{"posts"}, events: &events},
		Introspector: &fakeIntrospector{events: &events},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"list", "introspect"}, events)
}

func TestRun_ZeroTables(t *testing.T) {
	dir := t.TempDir()
	tablesPath := filepath.Join(dir, "db-tables.ts")
	indexPath := filepath.Join(dir, "db-tables-index.ts")

	err := Run(context.Background(), Options{
		Config:       testConfig(),
		TablesPath:   tablesPath,
		IndexPath:    indexPath,
		Lister:       &fakeLister{},
		Introspector: &fakeIntrospector{},
	})
	require.NoError(t, err)

	// Both artifacts are still written: empty mapping body, never union.
	index, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Contains(t, string(index), "export interface Tables {\n}\n")
	assert.Contains(t, string(index), "export type TableName = never;")

	_, err = os.Stat(tablesPath)
	assert.NoError(t, err)
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	tablesPath := filepath.Join(dir, "db-tables.ts")
	indexPath := filepath.Join(dir, "db-tables-index.ts")

	run := func() (string, string) {
		err := Run(context.Background(), Options{
			Config:       testConfig(),
			TablesPath:   tablesPath,
			IndexPath:    indexPath,
			Lister:       &fakeLister{tables: []string{"posts", "users"}},
			Introspector: &fakeIntrospector{},
		})
		require.NoError(t, err)

		declarations, err := os.ReadFile(tablesPath)
		require.NoError(t, err)
		index, err := os.ReadFile(indexPath)
		require.NoError(t, err)
		return string(declarations), string(index)
	}

	decl1, idx1 := run()
	decl2, idx2 := run()

	assert.Equal(t, decl1, decl2, "declarations artifact must be byte-identical across runs")
	assert.Equal(t, idx1, idx2, "index artifact must be byte-identical across runs")
}

func TestRun_ListError(t *testing.T) {
	dir := t.TempDir()
	tablesPath := filepath.Join(dir, "db-tables.ts")

	listErr := errors.New("connection refused")
	err := Run(context.Background(), Options{
		Config:       testConfig(),
		TablesPath:   tablesPath,
		IndexPath:    filepath.Join(dir, "db-tables-index.ts"),
		Lister:       &fakeLister{err: listErr},
		Introspector: &fakeIntrospector{},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, listErr)

	_, statErr := os.Stat(tablesPath)
	assert.True(t, os.IsNotExist(statErr), "no artifact may be written after a metadata failure")
}

func TestRun_IntrospectError(t *testing.T) {
	dir := t.TempDir()
	tablesPath := filepath.Join(dir, "db-tables.ts")

	err := Run(context.Background(), Options{
		Config:       testConfig(),
		TablesPath:   tablesPath,
		IndexPath:    filepath.Join(dir, "db-tables-index.ts"),
		Lister:       &fakeLister{tables: []string{"posts"}},
		Introspector: &fakeIntrospector{err: errors.New("boom")},
	})
	require.Error(t, err)

	_, statErr := os.Stat(tablesPath)
	assert.True(t, os.IsNotExist(statErr), "no artifact may be written after an introspection failure")
}

func TestRun_UnsupportedClient(t *testing.T) {
	cfg := testConfig()
	cfg.Client = "sqlite"

	err := Run(context.Background(), Options{
		Config:     cfg,
		TablesPath: filepath.Join(t.TempDir(), "db-tables.ts"),
		IndexPath:  filepath.Join(t.TempDir(), "db-tables-index.ts"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestImportPath(t *testing.T) {
	assert.Equal(t, "./db-tables", importPath("generated/db-tables.ts"))
	assert.Equal(t, "./db-tables", importPath("db-tables.ts"))
	assert.Equal(t, "./types", importPath("/abs/out/types.ts"))
}
