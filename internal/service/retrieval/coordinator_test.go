package retrieval

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcsuperstore/partspro/internal/core"
)

type fakeStructured struct {
	result core.StructuredResult
	err    error
	calls  *[]string
}

func (f *fakeStructured) Execute(_ context.Context, _ string) (core.StructuredResult, error) {
	*f.calls = append(*f.calls, "structured")
	return f.result, f.err
}

type fakeSemantic struct {
	result    core.SemanticResult
	calls     *[]string
	gotQuery  string
	gotFilter []string
}

func (f *fakeSemantic) Execute(_ context.Context, queryText string, idFilter []string) core.SemanticResult {
	*f.calls = append(*f.calls, "semantic")
	f.gotQuery = queryText
	f.gotFilter = idFilter
	return f.result
}

func TestRetrieveStructuredFirstScopesSemantic(t *testing.T) {
	calls := []string{}
	structured := &fakeStructured{
		result: core.StructuredResult{
			Status:  core.StatusSuccess,
			Columns: []string{"id", "title"},
			Rows: []core.Row{
				{"id": "p1", "title": "Traxxas Slash 4x4"},
				{"id": "p2", "title": "Traxxas Rustler"},
			},
		},
		calls: &calls,
	}
	semantic := &fakeSemantic{
		result: core.SemanticResult{
			Status:  core.StatusSuccess,
			Matches: []core.SemanticMatch{{ID: "p1", Score: 0.91}},
		},
		calls: &calls,
	}

	coordinator := NewCoordinator(structured, semantic)
	envelope := coordinator.Retrieve(context.Background(), "SELECT id, title FROM products", "fast brushless truck", true)

	require.Equal(t, []string{"structured", "semantic"}, calls)
	assert.Equal(t, []string{"p1", "p2"}, envelope.ExtractedIDs)
	assert.Equal(t, []string{"p1", "p2"}, semantic.gotFilter)
	assert.Equal(t, "fast brushless truck", semantic.gotQuery)
	require.NotNil(t, envelope.Semantic)
	assert.Equal(t, core.StatusSuccess, envelope.Semantic.Status)
	assert.Len(t, envelope.Semantic.Matches, 1)
}

func TestRetrieveStoreFailureSkipsSemantic(t *testing.T) {
	calls := []string{}
	structured := &fakeStructured{
		err:   errors.New("catalog store unreachable: no such file"),
		calls: &calls,
	}
	semantic := &fakeSemantic{calls: &calls}

	coordinator := NewCoordinator(structured, semantic)
	envelope := coordinator.Retrieve(context.Background(), "SELECT 1", "anything", true)

	assert.Equal(t, []string{"structured"}, calls)
	assert.Equal(t, core.StatusError, envelope.Structured.Status)
	assert.Contains(t, envelope.Structured.Message, "unreachable")
	assert.Nil(t, envelope.Semantic)
	assert.Empty(t, envelope.ExtractedIDs)
}

func TestRetrieveQueryFailureStillRunsSemantic(t *testing.T) {
	calls := []string{}
	structured := &fakeStructured{
		result: core.StructuredResult{
			Status:  core.StatusError,
			Message: "SQL execution failed: no such column: colour",
		},
		calls: &calls,
	}
	semantic := &fakeSemantic{
		result: core.SemanticResult{Status: core.StatusSuccess},
		calls:  &calls,
	}

	coordinator := NewCoordinator(structured, semantic)
	envelope := coordinator.Retrieve(context.Background(), "SELECT colour FROM products", "blue trucks", true)

	require.Equal(t, []string{"structured", "semantic"}, calls)
	assert.Equal(t, core.StatusError, envelope.Structured.Status)
	assert.Empty(t, semantic.gotFilter)
	require.NotNil(t, envelope.Semantic)
	assert.Equal(t, core.StatusSuccess, envelope.Semantic.Status)
}

func TestRetrieveSemanticDisabled(t *testing.T) {
	calls := []string{}
	structured := &fakeStructured{
		result: core.StructuredResult{
			Status: core.StatusSuccess,
			Rows:   []core.Row{{"id": "p1"}},
		},
		calls: &calls,
	}
	semantic := &fakeSemantic{calls: &calls}

	coordinator := NewCoordinator(structured, semantic)
	envelope := coordinator.Retrieve(context.Background(), "SELECT id FROM products", "", false)

	assert.Equal(t, []string{"structured"}, calls)
	assert.Nil(t, envelope.Semantic)
	assert.Equal(t, []string{"p1"}, envelope.ExtractedIDs)
}

func TestRetrieveBlankSemanticQueryWarns(t *testing.T) {
	calls := []string{}
	structured := &fakeStructured{
		result: core.StructuredResult{
			Status:  core.StatusSuccess,
			Columns: []string{"id"},
			Rows:    []core.Row{{"id": "p1"}, {"id": "p2"}},
		},
		calls: &calls,
	}
	semantic := &fakeSemantic{calls: &calls}

	coordinator := NewCoordinator(structured, semantic)
	envelope := coordinator.Retrieve(context.Background(), "SELECT id FROM products", "", true)

	assert.Equal(t, []string{"structured"}, calls)
	require.NotNil(t, envelope.Semantic)
	assert.Equal(t, core.StatusWarning, envelope.Semantic.Status)
	assert.Contains(t, envelope.Semantic.Message, "no query text")
	// ids found by the structured leg are still reported
	assert.Equal(t, []string{"p1", "p2"}, envelope.ExtractedIDs)
}

func TestRetrieveWarnsWhenNoIDsScopeTheSearch(t *testing.T) {
	calls := []string{}
	structured := &fakeStructured{
		result: core.StructuredResult{
			Status:  core.StatusSuccess,
			Columns: []string{"title"},
			Rows:    []core.Row{{"title": "no id projected"}},
		},
		calls: &calls,
	}
	semantic := &fakeSemantic{
		result: core.SemanticResult{Status: core.StatusSuccess},
		calls:  &calls,
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := logger.WithContext(context.Background())

	coordinator := NewCoordinator(structured, semantic)
	envelope := coordinator.Retrieve(ctx, "SELECT title FROM products", "crawler tires", true)

	// unscoped search still runs, but the condition is surfaced as a warning
	require.NotNil(t, envelope.Semantic)
	assert.Empty(t, semantic.gotFilter)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "unscoped")
}

func TestExtractIDs(t *testing.T) {
	rows := []core.Row{
		{"id": "p1"},
		{"title": "no id column"},
		{"id": nil},
		{"id": int64(42)},
		{"id": "p1"},
		{"id": []byte("p9")},
		{"id": float64(7)},
	}

	assert.Equal(t, []string{"p1", "42", "p1", "p9", "7"}, extractIDs(rows))
}
