// Package gen implements the generation pipeline: list tables, introspect
// columns, render the two TypeScript artifacts, and write them out.
package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/koustreak/tablegen/internal/config"
	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/database/mysql"
	"github.com/koustreak/tablegen/internal/database/postgres"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/logger"
	"github.com/koustreak/tablegen/internal/schema"
)

// Default artifact paths, relative to the working directory.
const (
	DefaultTablesPath = "generated/db-tables.ts"
	DefaultIndexPath  = "generated/db-tables-index.ts"
)

// TableLister fetches the base-table names of the target schema. The
// default implementation holds a database connection only for the duration
// of the one metadata query.
type TableLister interface {
	TableNames(ctx context.Context) ([]string, error)
}

// SchemaIntrospector turns a list of table names into rendered type
// declarations. The default implementation opens its own database
// connection; tests substitute a fake.
type SchemaIntrospector interface {
	TypeDeclarations(ctx context.Context, tables []string) (string, error)
}

// Options configures a generation run. Config is required; everything else
// has working defaults.
type Options struct {
	Config *config.Config

	// TablesPath and IndexPath are the artifact output paths. Existing
	// files are fully overwritten — no diffing, no backup.
	TablesPath string
	IndexPath  string

	// Lister and Introspector override the default database-backed
	// implementations.
	Lister       TableLister
	Introspector SchemaIntrospector

	Log *logger.Logger
}

// Run executes the pipeline: metadata connection → table list →
// introspection connection → declarations → index → file writes.
// Strictly sequential; the first failure aborts the run. If writing the
// index artifact fails, the declarations artifact stays written.
func Run(ctx context.Context, opts Options) error {
	if opts.TablesPath == "" {
		opts.TablesPath = DefaultTablesPath
	}
	if opts.IndexPath == "" {
		opts.IndexPath = DefaultIndexPath
	}
	if opts.Log == nil {
		opts.Log = logger.New(nil)
	}
	log := opts.Log.With().Str("schema", opts.Config.Schema()).Logger()

	lister := opts.Lister
	if lister == nil {
		lister = &dbLister{cfg: opts.Config}
	}

	// The metadata connection is scoped to this one query and released
	// before the introspection step opens its own connection, so at most
	// one connection is held at a time.
	tables, err := lister.TableNames(ctx)
	if err != nil {
		return err
	}
	tables = sortedUnique(tables)
	log.Infof("discovered %d tables", len(tables))

	intro := opts.Introspector
	if intro == nil {
		intro = &dbIntrospector{cfg: opts.Config}
	}

	declarations, err := intro.TypeDeclarations(ctx, tables)
	if err != nil {
		return err
	}

	index := RenderIndex(tables, importPath(opts.TablesPath))

	if err := writeArtifact(opts.TablesPath, declarations); err != nil {
		return err
	}
	log.Infof("wrote %s", opts.TablesPath)

	if err := writeArtifact(opts.IndexPath, index); err != nil {
		return err
	}
	log.Infof("wrote %s", opts.IndexPath)

	return nil
}

// dbLister is the default TableLister. It opens a connection, lists the
// base tables of the target schema, and closes the connection on every
// exit path.
type dbLister struct {
	cfg *config.Config
}

func (l *dbLister) TableNames(ctx context.Context) ([]string, error) {
	db, reader, err := openReader(ctx, l.cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tables, err := reader.ListTables(ctx, l.cfg.Schema())
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "fetch table names", err)
	}
	return tables, nil
}

// dbIntrospector is the default SchemaIntrospector. It opens its own
// database connection, independent of the metadata one.
type dbIntrospector struct {
	cfg *config.Config
}

func (d *dbIntrospector) TypeDeclarations(ctx context.Context, tables []string) (string, error) {
	db, reader, err := openReader(ctx, d.cfg)
	if err != nil {
		return "", err
	}
	defer db.Close()

	infos := make([]schema.TableInfo, 0, len(tables))
	for _, table := range tables {
		info, err := reader.InspectTable(ctx, d.cfg.Schema(), table)
		if err != nil {
			return "", errs.Wrap(errs.ErrKindQueryFailed, fmt.Sprintf("introspect table %q", table), err)
		}
		infos = append(infos, *info)
	}

	return RenderTables(infos), nil
}

// openReader connects with the driver selected by cfg.Client and pairs it
// with the matching introspector.
func openReader(ctx context.Context, cfg *config.Config) (database.DB, schema.Reader, error) {
	switch cfg.Client {
	case "mysql":
		db, err := mysql.New(ctx, database.DefaultConfig(database.DriverMySQL, cfg.URL()))
		if err != nil {
			return nil, nil, err
		}
		return db, schema.NewMySQLIntrospector(db), nil

	case "postgres", "postgresql", "pg":
		db, err := postgres.New(ctx, database.DefaultConfig(database.DriverPostgres, cfg.URL()))
		if err != nil {
			return nil, nil, err
		}
		return db, schema.NewPgIntrospector(db), nil

	default:
		return nil, nil, errs.New(errs.ErrKindInvalidInput,
			fmt.Sprintf("unsupported client %q (want mysql or postgres)", cfg.Client))
	}
}

// sortedUnique returns the sorted, deduplicated table-name set. The catalog
// query already sorts and cannot return duplicates; this pins the invariant
// the index artifact depends on regardless of backend quirks.
func sortedUnique(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}

// importPath derives the module specifier the index artifact uses to import
// the declarations artifact: same directory, extension stripped.
func importPath(tablesPath string) string {
	base := filepath.Base(tablesPath)
	return "./" + strings.TrimSuffix(base, filepath.Ext(base))
}

// writeArtifact overwrites path with content, creating the parent directory
// if needed.
func writeArtifact(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(errs.ErrKindWriteFailed, fmt.Sprintf("create output dir %s", dir), err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errs.Wrap(errs.ErrKindWriteFailed, fmt.Sprintf("write %s", path), err)
	}
	return nil
}
