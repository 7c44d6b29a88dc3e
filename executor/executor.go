package executor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/numkem/sqlcat/catalog"
	"github.com/numkem/sqlcat/sqlparams"
)

const DEFAULT_DRIVER_NAME = "sqlite"

var ErrIndexOutOfRange = errors.New("script index out of range")

// Params are the bindings for one statement: named values for @ident
// placeholders and positional values for ? markers.
type Params struct {
	Named      map[string]any
	Positional []any
}

// Row is a single result row keyed by column name.
type Row map[string]any

// Executor runs catalog scripts against a database through database/sql.
// Statements that return no rows yield an empty result, indistinguishable
// from a query that matched nothing.
type Executor struct {
	db  *sql.DB
	cat *catalog.Catalog
}

func New(driver, dsn string, cat *catalog.Catalog) (*Executor, error) {
	if driver == "" {
		driver = DEFAULT_DRIVER_NAME
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dsn, err)
	}

	return &Executor{db: db, cat: cat}, nil
}

// NewWithDB wraps an already opened database handle.
func NewWithDB(db *sql.DB, cat *catalog.Catalog) *Executor {
	return &Executor{db: db, cat: cat}
}

func (e *Executor) Close() error {
	return e.db.Close()
}

func namedArgs(params map[string]any) []any {
	args := make([]any, 0, len(params))
	for k, v := range params {
		args = append(args, sql.Named(k, v))
	}

	return args
}

func collectRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	out := []Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func (e *Executor) resolve(name string) (string, error) {
	script, err := e.cat.FindByName(name)
	if err != nil {
		return "", err
	}
	if script.FileMissing {
		return "", fmt.Errorf("script %q has no readable file at %s", name, script.Path)
	}

	return script.Content, nil
}

// RunSQL normalizes and executes raw SQL text.
func (e *Executor) RunSQL(ctx context.Context, query string, params Params) ([]Row, error) {
	normalized, bound, err := sqlparams.Normalize(query, params.Named, params.Positional)
	if err != nil {
		return nil, err
	}

	rows, err := e.db.QueryContext(ctx, normalized, namedArgs(bound)...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute statement: %w", err)
	}

	return collectRows(rows)
}

// RunScript resolves a script by name and executes it.
func (e *Executor) RunScript(ctx context.Context, name string, params Params) ([]Row, error) {
	content, err := e.resolve(name)
	if err != nil {
		return nil, err
	}

	log.Debugf("executing script %q", name)
	return e.RunSQL(ctx, content, params)
}

// RunCategoryScript executes the index-th script of a category, counting in
// index order from zero.
func (e *Executor) RunCategoryScript(ctx context.Context, category string, index int, params Params) ([]Row, error) {
	scripts := e.cat.FindByCategory(category)
	if len(scripts) == 0 {
		return nil, fmt.Errorf("%w: no scripts in category %q", catalog.ErrNotFound, category)
	}

	if index < 0 || index >= len(scripts) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, len(scripts)-1)
	}

	script := scripts[index]
	if script.FileMissing {
		return nil, fmt.Errorf("script %q has no readable file at %s", script.Name, script.Path)
	}

	return e.RunSQL(ctx, script.Content, params)
}

// RunTransaction executes the named scripts in order inside one
// transaction. The first failure rolls everything back and is returned;
// intermediate results are discarded either way.
func (e *Executor) RunTransaction(ctx context.Context, names []string, params []Params) error {
	if params == nil {
		params = make([]Params, len(names))
	}
	if len(names) != len(params) {
		return fmt.Errorf("got %d scripts but %d parameter sets", len(names), len(params))
	}

	// Resolve everything up front so an unknown name fails before any
	// statement runs.
	contents := make([]string, len(names))
	for i, name := range names {
		content, err := e.resolve(name)
		if err != nil {
			return err
		}
		contents[i] = content
	}

	txid := uuid.NewString()
	logger := log.WithField("txid", txid)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, content := range contents {
		normalized, bound, err := sqlparams.Normalize(content, params[i].Named, params[i].Positional)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to normalize script %q: %w", names[i], err)
		}

		if _, err := tx.ExecContext(ctx, normalized, namedArgs(bound)...); err != nil {
			tx.Rollback()
			logger.Errorf("rolled back after script %q: %v", names[i], err)
			return fmt.Errorf("failed to execute script %q: %w", names[i], err)
		}

		logger.Debugf("executed script %q", names[i])
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
