package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/rcsuperstore/partspro/pkg/log"
)

type QdrantConfig struct {
	Addr       string `env:"QDRANT_ADDR" envDefault:"localhost:6334"`
	Collection string `env:"QDRANT_COLLECTION" envDefault:"products"`
}

func NewQdrantConfig(ctx context.Context) *QdrantConfig {
	c := &QdrantConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Qdrant config")
	}
	return c
}
