package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/rcsuperstore/partspro/pkg/log"
)

type BigCommerceConfig struct {
	StoreHash string `env:"BIGCOMMERCE_STORE_HASH,required,notEmpty"`
	APIKey    string `env:"BIGCOMMERCE_API_KEY,required,notEmpty"`
	BaseURL   string `env:"BIGCOMMERCE_BASE_URL" envDefault:"https://api.bigcommerce.com"`
}

func NewBigCommerceConfig(ctx context.Context) *BigCommerceConfig {
	c := &BigCommerceConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse BigCommerce config")
	}
	return c
}
