package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/rcsuperstore/partspro/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"PARTSPRO_RUNTIME_PATH" envDefault:".partspro"`

	// Catalog relational store (read-only at query time; populated by
	// external ingestion jobs).
	CatalogPath string `env:"CATALOG_DB_PATH" envDefault:"data/inventory.db"`

	// Transport flags
	EnableCLI         bool `env:"ENABLE_CLI" envDefault:"true"`
	EnableOrderLookup bool `env:"ENABLE_ORDER_LOOKUP" envDefault:"false"`

	// Conversation memory: newest turns retained per session.
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"20"`

	// Upper bound on planner reasoning rounds within one user turn.
	MaxPlannerRounds int `env:"MAX_PLANNER_ROUNDS" envDefault:"6"`

	// Tool results larger than this are truncated before they reach the
	// model context.
	MaxToolResultTokens int `env:"MAX_TOOL_RESULT_TOKENS" envDefault:"4000"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "partspro.db")
}

func (c AppConfig) GetCatalogPath() string {
	return c.CatalogPath
}

func (c AppConfig) GetHistoryLimit() int {
	return c.HistoryLimit
}
