package retrieval

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcsuperstore/partspro/internal/core"
)

func newTestCatalog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE products (id TEXT PRIMARY KEY, title TEXT, price REAL);
		INSERT INTO products VALUES ('p1', 'Traxxas Slash 4x4', 429.99);
		INSERT INTO products VALUES ('p2', 'Traxxas Rustler', 299.99);
	`)
	require.NoError(t, err)
	return path
}

func TestStructuredExecuteReturnsRows(t *testing.T) {
	executor := NewStructuredExecutor(newTestCatalog(t), 5*time.Second)

	result, err := executor.Execute(context.Background(), "SELECT id, title FROM products ORDER BY id")

	require.NoError(t, err)
	assert.Equal(t, core.StatusSuccess, result.Status)
	assert.Equal(t, []string{"id", "title"}, result.Columns)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "p1", result.Rows[0]["id"])
	assert.Equal(t, "Traxxas Slash 4x4", result.Rows[0]["title"])
	assert.False(t, result.Failed())
}

func TestStructuredExecuteBadQueryIsTyped(t *testing.T) {
	executor := NewStructuredExecutor(newTestCatalog(t), 5*time.Second)

	result, err := executor.Execute(context.Background(), "SELECT colour FROM products")

	require.NoError(t, err)
	assert.Equal(t, core.StatusError, result.Status)
	assert.Contains(t, result.Message, "SQL execution failed")
	assert.True(t, result.Failed())
}

func TestStructuredExecuteUnreachableStoreIsHardError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "nested", "catalog.db")
	executor := NewStructuredExecutor(path, 5*time.Second)

	_, err := executor.Execute(context.Background(), "SELECT 1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestStructuredExecuteEmptyResultIsSuccess(t *testing.T) {
	executor := NewStructuredExecutor(newTestCatalog(t), 5*time.Second)

	result, err := executor.Execute(context.Background(), "SELECT id FROM products WHERE price > 1000")

	require.NoError(t, err)
	assert.Equal(t, core.StatusSuccess, result.Status)
	assert.Empty(t, result.Rows)
}
