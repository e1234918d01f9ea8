package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/pkg/log"
)

// Handler defines a function signature for internal tools
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Registry holds the assistant's built-in tools. All tools run in-process,
// there is no external tool server to manage.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	defs     []core.Tool
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		defs:     make([]core.Tool, 0),
	}
}

func (r *Registry) Register(name, description string, schema json.RawMessage, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[name] = handler
	r.defs = append(r.defs, core.Tool{
		Type: "function",
		Function: core.Function{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
	})
}

func (r *Registry) GetTools() []core.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Tool, len(r.defs))
	copy(out, r.defs)
	return out
}

func (r *Registry) CallTool(ctx context.Context, name string, args string) (string, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	log.FromCtx(ctx).Debug().Str("tool", name).Msg("calling tool")
	return handler(ctx, json.RawMessage(args))
}
