package retrieval

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/pkg/log"
)

type StructuredRunner interface {
	Execute(ctx context.Context, query string) (core.StructuredResult, error)
}

type SemanticRunner interface {
	Execute(ctx context.Context, queryText string, idFilter []string) core.SemanticResult
}

// Coordinator chains the two retrieval paths. The structured query always
// runs first so its id column can scope the vector search to the exact rows
// the catalog matched. A failed structured query is still reported in full;
// only an unreachable store stops the semantic leg from running.
type Coordinator struct {
	structured StructuredRunner
	semantic   SemanticRunner
}

func NewCoordinator(structured StructuredRunner, semantic SemanticRunner) *Coordinator {
	return &Coordinator{
		structured: structured,
		semantic:   semantic,
	}
}

func (c *Coordinator) Retrieve(ctx context.Context, structuredQuery, semanticQuery string, useSemantic bool) *core.Envelope {
	structured, err := c.structured.Execute(ctx, structuredQuery)
	if err != nil {
		// The store itself is down. There is nothing trustworthy to scope a
		// vector search with, so stop here and report what happened.
		log.FromCtx(ctx).Error().Err(err).Msg("structured retrieval unavailable")
		return &core.Envelope{
			Structured: core.StructuredResult{
				Status:  core.StatusError,
				Message: fmt.Sprintf("structured retrieval unavailable: %v", err),
			},
		}
	}

	// The envelope reports extracted ids even when the semantic leg does not
	// run, so the planner always sees what the structured rows yielded.
	ids := extractIDs(structured.Rows)
	envelope := &core.Envelope{Structured: structured, ExtractedIDs: ids}
	if !useSemantic {
		return envelope
	}

	if len(ids) == 0 {
		log.FromCtx(ctx).Warn().Msg("no ids extracted, semantic search runs unscoped")
	}

	if semanticQuery == "" {
		log.FromCtx(ctx).Warn().Msg("semantic search requested without query text")
		envelope.Semantic = &core.SemanticResult{
			Status:  core.StatusWarning,
			Message: "semantic search requested but no query text was provided",
		}
		return envelope
	}

	semantic := c.semantic.Execute(ctx, semanticQuery, ids)
	envelope.Semantic = &semantic
	return envelope
}

// extractIDs collects the id column of each row in result order. Rows without
// one are skipped, duplicates are kept as-is.
func extractIDs(rows []core.Row) []string {
	var ids []string
	for _, row := range rows {
		value, ok := row["id"]
		if !ok || value == nil {
			continue
		}
		ids = append(ids, stringifyID(value))
	}
	return ids
}

func stringifyID(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
