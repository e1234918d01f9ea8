package mcpsrv

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/internal/service/tools"
	"github.com/rcsuperstore/partspro/pkg/log"
)

// Server exposes the retrieval tools over MCP stdio, so external agent hosts
// can use the catalog without going through the built-in planner.
type Server struct {
	mcp      *server.MCPServer
	registry core.ToolRegistry
}

func NewServer(registry core.ToolRegistry, withOrders bool) *Server {
	s := server.NewMCPServer(core.AppName, core.AppVersion, server.WithToolCapabilities(true))

	srv := &Server{mcp: s, registry: registry}
	srv.addCatalogSearch()
	if withOrders {
		srv.addGetOrder()
	}
	return srv
}

func (s *Server) addCatalogSearch() {
	tool := mcp.NewTool(tools.ToolCatalogSearch,
		mcp.WithDescription("Search the product catalog. Runs the SQL query first, then optionally a semantic similarity search scoped to the ids the SQL query returned."),
		mcp.WithString("sql_query",
			mcp.Required(),
			mcp.Description("A complete SQLite SELECT statement against the product catalog. Always include the id column."),
		),
		mcp.WithString("semantic_query",
			mcp.Description("Free-text description of what the customer is looking for."),
		),
		mcp.WithBoolean("use_semantic",
			mcp.Description("Set true to run a semantic similarity search alongside the SQL query."),
		),
	)

	s.mcp.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.dispatch(ctx, tools.ToolCatalogSearch, request)
	})
}

func (s *Server) addGetOrder() {
	tool := mcp.NewTool(tools.ToolGetOrder,
		mcp.WithDescription("Look up a customer's order by its id and return the order details."),
		mcp.WithNumber("order_id",
			mcp.Required(),
			mcp.Description("The numeric order id."),
		),
	)

	s.mcp.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.dispatch(ctx, tools.ToolGetOrder, request)
	})
}

// dispatch reuses the native registry so both transports share one tool
// implementation.
func (s *Server) dispatch(ctx context.Context, name string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := json.Marshal(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := s.registry.CallTool(ctx, name, string(args))
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("tool", name).Msg("tool call failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) Start(_ context.Context) error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) Shutdown(_ context.Context) error {
	// Stdio transport ends when stdin closes.
	return nil
}
