package executor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numkem/sqlcat/catalog"
	"github.com/numkem/sqlcat/sqlparams"
)

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()

	dir := t.TempDir()
	cat, err := catalog.New(filepath.Join(dir, "metadata.json"), filepath.Join(dir, "scripts"))
	require.NoError(t, err)

	_, err = cat.Add("fetch by id", "queries", "Fetch one item by id",
		"SELECT id, name, status FROM items WHERE id = @id", "")
	require.NoError(t, err)
	_, err = cat.Add("fetch by name", "queries", "Fetch items by name",
		"SELECT id, name, status FROM items WHERE name = ?", "")
	require.NoError(t, err)
	_, err = cat.Add("update status", "mutations", "Set an item's status",
		"UPDATE items SET status = @status WHERE id = @id", "")
	require.NoError(t, err)
	_, err = cat.Add("broken update", "mutations", "References a missing table",
		"UPDATE missing_table SET status = @status WHERE id = @id", "")
	require.NoError(t, err)

	ex, err := New("", ":memory:", cat)
	require.NoError(t, err)
	t.Cleanup(func() { ex.Close() })

	// A fresh pool connection would get its own empty in-memory database.
	ex.db.SetMaxOpenConns(1)

	ctx := context.Background()
	_, err = ex.RunSQL(ctx, "CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, status TEXT)", Params{})
	require.NoError(t, err)
	_, err = ex.RunSQL(ctx, "INSERT INTO items (id, name, status) VALUES (1, 'first', 'new'), (2, 'second', 'new')", Params{})
	require.NoError(t, err)

	return ex
}

func itemStatus(t *testing.T, ex *Executor, id int) string {
	t.Helper()

	rows, err := ex.RunSQL(context.Background(), "SELECT status FROM items WHERE id = @id", Params{
		Named: map[string]any{"id": id},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	return rows[0]["status"].(string)
}

func TestExecutorRunScriptNamed(t *testing.T) {
	ex := newTestExecutor(t)

	rows, err := ex.RunScript(context.Background(), "fetch by id", Params{
		Named: map[string]any{"id": 1},
	})
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "first", rows[0]["name"])
	assert.Equal(t, int64(1), rows[0]["id"])
}

func TestExecutorRunScriptPositional(t *testing.T) {
	ex := newTestExecutor(t)

	rows, err := ex.RunScript(context.Background(), "fetch by name", Params{
		Positional: []any{"second"},
	})
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0]["id"])
}

func TestExecutorPositionalBindOrder(t *testing.T) {
	ex := newTestExecutor(t)
	ctx := context.Background()

	query := "SELECT id FROM items WHERE id = ? AND name = ?"

	rows, err := ex.RunSQL(ctx, query, Params{Positional: []any{1, "first"}})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	// Swapped values must bind to the wrong columns and match nothing.
	rows, err = ex.RunSQL(ctx, query, Params{Positional: []any{"first", 1}})
	assert.NoError(t, err)
	assert.Empty(t, rows)

	_, err = ex.RunSQL(ctx, query, Params{Positional: []any{1}})
	assert.ErrorIs(t, err, sqlparams.ErrInsufficientParams)
}

func TestExecutorMutationReturnsEmpty(t *testing.T) {
	ex := newTestExecutor(t)

	rows, err := ex.RunScript(context.Background(), "update status", Params{
		Named: map[string]any{"id": 1, "status": "done"},
	})
	assert.NoError(t, err)
	assert.Empty(t, rows)

	assert.Equal(t, "done", itemStatus(t, ex, 1))
}

func TestExecutorUnknownScript(t *testing.T) {
	ex := newTestExecutor(t)

	_, err := ex.RunScript(context.Background(), "no such script", Params{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestExecutorRunCategoryScript(t *testing.T) {
	ex := newTestExecutor(t)
	ctx := context.Background()

	rows, err := ex.RunCategoryScript(ctx, "queries", 0, Params{
		Named: map[string]any{"id": 2},
	})
	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "second", rows[0]["name"])

	_, err = ex.RunCategoryScript(ctx, "queries", 5, Params{})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "[0, 1]")

	_, err = ex.RunCategoryScript(ctx, "nonexistent", 0, Params{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestExecutorTransactionCommit(t *testing.T) {
	ex := newTestExecutor(t)

	err := ex.RunTransaction(context.Background(),
		[]string{"update status", "update status"},
		[]Params{
			{Named: map[string]any{"id": 1, "status": "done"}},
			{Named: map[string]any{"id": 2, "status": "done"}},
		})
	assert.NoError(t, err)

	assert.Equal(t, "done", itemStatus(t, ex, 1))
	assert.Equal(t, "done", itemStatus(t, ex, 2))
}

func TestExecutorTransactionRollback(t *testing.T) {
	ex := newTestExecutor(t)

	err := ex.RunTransaction(context.Background(),
		[]string{"update status", "broken update"},
		[]Params{
			{Named: map[string]any{"id": 1, "status": "done"}},
			{Named: map[string]any{"id": 2, "status": "done"}},
		})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken update")

	// The first statement's effect must be gone.
	assert.Equal(t, "new", itemStatus(t, ex, 1))
}

func TestExecutorTransactionUnknownScript(t *testing.T) {
	ex := newTestExecutor(t)

	err := ex.RunTransaction(context.Background(),
		[]string{"update status", "no such script"}, nil)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	// Nothing ran: the unknown name fails the unit before any statement.
	assert.Equal(t, "new", itemStatus(t, ex, 1))
}

func TestExecutorTransactionParamsMismatch(t *testing.T) {
	ex := newTestExecutor(t)

	err := ex.RunTransaction(context.Background(),
		[]string{"fetch by id", "fetch by name"},
		[]Params{{Named: map[string]any{"id": 1}}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parameter sets")
}

func TestExecutorZeroRowQuery(t *testing.T) {
	ex := newTestExecutor(t)

	// Indistinguishable from a mutation by the return value alone.
	rows, err := ex.RunScript(context.Background(), "fetch by id", Params{
		Named: map[string]any{"id": 999},
	})
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
