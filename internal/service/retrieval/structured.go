package retrieval

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rcsuperstore/partspro/internal/core"
	"github.com/rcsuperstore/partspro/pkg/log"
)

// StructuredExecutor runs planner-generated SQL against the catalog store.
// Every call opens and closes its own connection so concurrent sessions never
// share or leak one. The store itself is the query validator: query-level
// errors come back as typed failures, only an unreachable store is a hard
// error.
type StructuredExecutor struct {
	dbPath  string
	timeout time.Duration
}

func NewStructuredExecutor(dbPath string, timeout time.Duration) *StructuredExecutor {
	return &StructuredExecutor{
		dbPath:  dbPath,
		timeout: timeout,
	}
}

func (e *StructuredExecutor) Execute(ctx context.Context, query string) (core.StructuredResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	db, err := sql.Open("sqlite3", e.dbPath)
	if err != nil {
		return core.StructuredResult{}, fmt.Errorf("open catalog store: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return core.StructuredResult{}, fmt.Errorf("catalog store unreachable: %w", err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		// Malformed query, unknown column etc. A normal, typed outcome the
		// planner can react to.
		log.FromCtx(ctx).Warn().Err(err).Str("query", query).Msg("structured query failed")
		return core.StructuredResult{
			Status:  core.StatusError,
			Message: fmt.Sprintf("SQL execution failed: %v", err),
		}, nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return core.StructuredResult{
			Status:  core.StatusError,
			Message: fmt.Sprintf("SQL execution failed: %v", err),
		}, nil
	}

	var out []core.Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return core.StructuredResult{
				Status:  core.StatusError,
				Message: fmt.Sprintf("SQL execution failed: %v", err),
			}, nil
		}

		row := make(core.Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return core.StructuredResult{
			Status:  core.StatusError,
			Message: fmt.Sprintf("SQL execution failed: %v", err),
		}, nil
	}

	log.FromCtx(ctx).Debug().Int("rows", len(out)).Msg("structured query done")
	return core.StructuredResult{
		Status:  core.StatusSuccess,
		Columns: columns,
		Rows:    out,
	}, nil
}
