package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rcsuperstore/partspro/internal/core"
)

// ToolCatalogSearch is the hybrid catalog retrieval tool exposed to the model.
const ToolCatalogSearch = "catalog_search"

const catalogSearchSchema = `
{
  "type": "object",
  "properties": {
    "sql_query": {
      "type": "string",
      "description": "A complete SQLite SELECT statement against the product catalog. Always include the id column so results can scope the semantic search."
    },
    "semantic_query": {
      "type": "string",
      "description": "Free-text description of what the customer is looking for, used for similarity search over product descriptions."
    },
    "use_semantic": {
      "type": "boolean",
      "description": "Set true when the question involves meaning or suitability rather than exact attributes."
    }
  },
  "required": ["sql_query"]
}
`

type catalogSearchArgs struct {
	SQLQuery      string `json:"sql_query"`
	SemanticQuery string `json:"semantic_query"`
	UseSemantic   bool   `json:"use_semantic"`
}

// Retriever is the hybrid retrieval entry point the search tool delegates to.
type Retriever interface {
	Retrieve(ctx context.Context, structuredQuery, semanticQuery string, useSemantic bool) *core.Envelope
}

// RegisterCatalogSearch wires the hybrid search tool into the registry.
func RegisterCatalogSearch(registry *Registry, retriever Retriever) {
	registry.Register(
		ToolCatalogSearch,
		"Search the product catalog. Runs the SQL query first, then optionally a semantic similarity search scoped to the ids the SQL query returned.",
		json.RawMessage(catalogSearchSchema),
		func(ctx context.Context, args json.RawMessage) (string, error) {
			var params catalogSearchArgs
			if err := json.Unmarshal(args, &params); err != nil {
				return "", fmt.Errorf("invalid catalog_search arguments: %w", err)
			}
			if params.SQLQuery == "" {
				return "", fmt.Errorf("catalog_search requires sql_query")
			}

			envelope := retriever.Retrieve(ctx, params.SQLQuery, params.SemanticQuery, params.UseSemantic)
			payload, err := json.Marshal(envelope)
			if err != nil {
				return "", fmt.Errorf("failed to encode search results: %w", err)
			}
			return string(payload), nil
		},
	)
}
