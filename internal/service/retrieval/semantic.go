package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/pkg/log"
)

// SemanticExecutor embeds a free-text query and searches the vector index,
// optionally scoped to a set of catalog ids. It never returns a Go error:
// whatever goes wrong becomes a typed result so a structured answer can still
// be produced alongside it.
type SemanticExecutor struct {
	embedder      core.Embedder
	index         core.VectorIndex
	topK          int
	embedTimeout  time.Duration
	searchTimeout time.Duration
}

func NewSemanticExecutor(embedder core.Embedder, index core.VectorIndex, topK int, embedTimeout, searchTimeout time.Duration) *SemanticExecutor {
	return &SemanticExecutor{
		embedder:      embedder,
		index:         index,
		topK:          topK,
		embedTimeout:  embedTimeout,
		searchTimeout: searchTimeout,
	}
}

func (e *SemanticExecutor) Execute(ctx context.Context, queryText string, idFilter []string) core.SemanticResult {
	if strings.TrimSpace(queryText) == "" {
		return core.SemanticResult{
			Status:  core.StatusError,
			Message: "semantic query text is empty",
		}
	}

	embedCtx, cancel := context.WithTimeout(ctx, e.embedTimeout)
	vector, err := e.embedder.Embed(embedCtx, queryText)
	cancel()
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("embedding failed")
		return core.SemanticResult{
			Status:  core.StatusError,
			Message: fmt.Sprintf("failed to embed query: %v", err),
		}
	}

	searchCtx, cancel := context.WithTimeout(ctx, e.searchTimeout)
	matches, err := e.index.Search(searchCtx, vector, e.topK, idFilter)
	cancel()
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("vector search failed")
		return core.SemanticResult{
			Status:  core.StatusError,
			Message: fmt.Sprintf("vector search failed: %v", err),
		}
	}

	log.FromCtx(ctx).Debug().Int("matches", len(matches)).Int("filter", len(idFilter)).Msg("semantic search done")
	return core.SemanticResult{
		Status:  core.StatusSuccess,
		Matches: matches,
	}
}
