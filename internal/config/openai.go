package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/rcsuperstore/partspro/pkg/log"
)

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY,required,notEmpty"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

	EmbeddingModel string `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-ada-002"`
	// Must match the vector index dimension exactly; checked at startup.
	EmbeddingDimensions int `env:"OPENAI_EMBEDDING_DIMENSIONS" envDefault:"1536"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}
