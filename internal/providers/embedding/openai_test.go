package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rcsuperstore/partspro/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(t *testing.T, dims int, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return NewOpenAI(&config.OpenAIConfig{
		APIKey:              "test-key",
		BaseURL:             ts.URL,
		EmbeddingModel:      "text-embedding-ada-002",
		EmbeddingDimensions: dims,
	})
}

func TestEmbedReturnsVector(t *testing.T) {
	var gotInput embedRequest

	e := newTestEmbedder(t, 3, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	})

	vec, err := e.Embed(context.Background(), "durable\noff-road suspension")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	// newlines are flattened before embedding
	require.Len(t, gotInput.Input, 1)
	assert.Equal(t, "durable off-road suspension", gotInput.Input[0])
}

func TestEmbedRejectsBlankInput(t *testing.T) {
	e := newTestEmbedder(t, 3, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server must not be called for blank input")
	})

	_, err := e.Embed(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEmbedRejectsDimensionMismatch(t *testing.T) {
	e := newTestEmbedder(t, 1536, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2}}},
		})
	})

	_, err := e.Embed(context.Background(), "shock absorber")
	assert.ErrorContains(t, err, "expected 1536")
}

func TestDimensionsReportsConfiguredWidth(t *testing.T) {
	e := newTestEmbedder(t, 1536, nil)
	assert.Equal(t, 1536, e.Dimensions())
}
