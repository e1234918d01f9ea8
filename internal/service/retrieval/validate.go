package retrieval

import (
	"context"
	"fmt"

	"github.com/rcsuperstore/partspro/internal/core"
)

// ValidateDimensions verifies that the embedding model and the vector index
// agree on vector size. Searching with mismatched vectors would fail on every
// call, or worse, silently return garbage, so callers treat a non-nil error
// as fatal before serving.
func ValidateDimensions(ctx context.Context, embedder core.Embedder, index core.VectorIndex) error {
	indexDims, err := index.Dimensions(ctx)
	if err != nil {
		return fmt.Errorf("read vector index dimensions: %w", err)
	}
	if embedder.Dimensions() != indexDims {
		return fmt.Errorf("embedding model produces %d dimensions but the vector index expects %d",
			embedder.Dimensions(), indexDims)
	}
	return nil
}
