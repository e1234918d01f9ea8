package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rcsuperstore/partspro/pkg/log"
)

type RetrievalConfig struct {
	// Ranked matches requested from the vector index.
	TopK int `env:"RETRIEVAL_TOP_K" envDefault:"10"`

	// Per-call timeouts for the external stores. Timeouts surface as typed
	// failures inside the envelope, never as a hung turn.
	SQLTimeout    time.Duration `env:"RETRIEVAL_SQL_TIMEOUT" envDefault:"5s"`
	EmbedTimeout  time.Duration `env:"RETRIEVAL_EMBED_TIMEOUT" envDefault:"15s"`
	SearchTimeout time.Duration `env:"RETRIEVAL_SEARCH_TIMEOUT" envDefault:"10s"`

	// Consecutive typed structured failures within one user turn before the
	// planner is told to go semantic-only for the rest of the turn.
	MaxSQLFailures int `env:"RETRIEVAL_MAX_SQL_FAILURES" envDefault:"3"`
}

func NewRetrievalConfig(ctx context.Context) *RetrievalConfig {
	c := &RetrievalConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Retrieval config")
	}
	return c
}
