package core

import "context"

// ChatProvider is the reasoning capability: given history and declared tools
// it either answers or asks for a tool invocation.
type ChatProvider interface {
	Chat(ctx context.Context, history []Message, tools []Tool) (Message, error)
	// ChatStream behaves like Chat but forwards content deltas to onDelta in
	// arrival order while the response is being produced.
	ChatStream(ctx context.Context, history []Message, tools []Tool, onDelta func(string)) (Message, error)
}

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// VectorIndex is the similarity-searchable side of the catalog. An optional
// identifier filter restricts the search to the given record ids at the index
// level, not as a post-filter.
type VectorIndex interface {
	Search(ctx context.Context, vector []float32, topK int, idFilter []string) ([]SemanticMatch, error)
	Dimensions(ctx context.Context) (int, error)
}

// ToolRegistry is the set of tools declared to the planner.
type ToolRegistry interface {
	GetTools() []Tool
	CallTool(ctx context.Context, name string, args string) (string, error)
}
