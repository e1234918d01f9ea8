package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/internal/service/retrieval"
	"github.com/rcsuperstore/partspro/internal/service/tools"
)

type staticEmbedder struct{ vector []float32 }

func (e *staticEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return e.vector, nil
}

func (e *staticEmbedder) Dimensions() int { return len(e.vector) }

type recordingIndex struct {
	matches   []core.SemanticMatch
	gotFilter []string
}

func (i *recordingIndex) Search(_ context.Context, _ []float32, _ int, idFilter []string) ([]core.SemanticMatch, error) {
	i.gotFilter = idFilter
	return i.matches, nil
}

func (i *recordingIndex) Dimensions(_ context.Context) (int, error) { return 3, nil }

func seedCatalog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE products (
			id TEXT PRIMARY KEY, sku TEXT, title TEXT, brand TEXT,
			category TEXT, price REAL, availability TEXT, description TEXT
		);
		INSERT INTO products VALUES
			('p1', 'TRA68086', 'Traxxas Slash 4x4 VXL', 'Traxxas', 'trucks', 429.99, 'in_stock', 'Brushless short course truck'),
			('p2', 'TRA37076', 'Traxxas Rustler VXL', 'Traxxas', 'trucks', 299.99, 'in_stock', 'Brushless stadium truck'),
			('p3', 'ARA4302', 'Arrma Granite', 'Arrma', 'trucks', 249.99, 'backorder', 'Monster truck for bashers');
	`)
	require.NoError(t, err)
	return path
}

// The full retrieval path through the tool boundary: the SQL results scope
// the vector search, and the envelope the model receives carries both legs.
func TestHybridSearchThroughToolBoundary(t *testing.T) {
	structured := retrieval.NewStructuredExecutor(seedCatalog(t), 5*time.Second)
	index := &recordingIndex{
		matches: []core.SemanticMatch{
			{ID: "p1", Score: 0.93, Metadata: map[string]string{"title": "Traxxas Slash 4x4 VXL"}},
		},
	}
	semantic := retrieval.NewSemanticExecutor(&staticEmbedder{vector: []float32{0.1, 0.2, 0.3}}, index, 10, time.Second, time.Second)

	registry := tools.NewRegistry()
	tools.RegisterCatalogSearch(registry, retrieval.NewCoordinator(structured, semantic))

	args := `{
		"sql_query": "SELECT id, title, price FROM products WHERE brand = 'Traxxas' ORDER BY id",
		"semantic_query": "fast truck that handles jumps well",
		"use_semantic": true
	}`
	out, err := registry.CallTool(context.Background(), tools.ToolCatalogSearch, args)
	require.NoError(t, err)

	var envelope core.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))

	assert.Equal(t, core.StatusSuccess, envelope.Structured.Status)
	require.Len(t, envelope.Structured.Rows, 2)
	assert.Equal(t, []string{"p1", "p2"}, envelope.ExtractedIDs)
	assert.Equal(t, []string{"p1", "p2"}, index.gotFilter)

	require.NotNil(t, envelope.Semantic)
	assert.Equal(t, core.StatusSuccess, envelope.Semantic.Status)
	require.Len(t, envelope.Semantic.Matches, 1)
	assert.Equal(t, "p1", envelope.Semantic.Matches[0].ID)
}

func TestHybridSearchBadSQLStillSearchesSemantically(t *testing.T) {
	structured := retrieval.NewStructuredExecutor(seedCatalog(t), 5*time.Second)
	index := &recordingIndex{}
	semantic := retrieval.NewSemanticExecutor(&staticEmbedder{vector: []float32{0.1, 0.2, 0.3}}, index, 10, time.Second, time.Second)

	registry := tools.NewRegistry()
	tools.RegisterCatalogSearch(registry, retrieval.NewCoordinator(structured, semantic))

	args := `{
		"sql_query": "SELECT colour FROM products",
		"semantic_query": "beginner friendly truck",
		"use_semantic": true
	}`
	out, err := registry.CallTool(context.Background(), tools.ToolCatalogSearch, args)
	require.NoError(t, err)

	var envelope core.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))

	assert.Equal(t, core.StatusError, envelope.Structured.Status)
	require.NotNil(t, envelope.Semantic)
	assert.Equal(t, core.StatusSuccess, envelope.Semantic.Status)
	assert.Empty(t, index.gotFilter)
}
