package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/rcsuperstore/partspro/internal/commerce"
	"github.com/rcsuperstore/partspro/internal/config"
	"github.com/rcsuperstore/partspro/internal/providers/embedding"
	"github.com/rcsuperstore/partspro/internal/providers/llm"
	"github.com/rcsuperstore/partspro/internal/providers/vector"
	"github.com/rcsuperstore/partspro/internal/service/retrieval"
	"github.com/rcsuperstore/partspro/internal/service/session"
	"github.com/rcsuperstore/partspro/internal/service/tools"
	"github.com/rcsuperstore/partspro/internal/storage/sqlite"
	"github.com/rcsuperstore/partspro/pkg/log"
	"github.com/rcsuperstore/partspro/pkg/srv"
)

type application struct {
	appCfg       *config.AppConfig
	retrievalCfg *config.RetrievalConfig
	registry     *tools.Registry
	deps         session.Deps

	// Resources that need closing on shutdown.
	services []srv.Service
}

func newApplication(ctx context.Context) *application {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	openaiCfg := config.NewOpenAIConfig(ctx)
	qdrantCfg := config.NewQdrantConfig(ctx)
	retrievalCfg := config.NewRetrievalConfig(ctx)

	services := make([]srv.Service, 0)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize runtime storage")
	}
	services = append(services, srv.NewCleanup(db.Close))
	messagesRepo := sqlite.NewMessagesRepo(db)

	// The catalog schema is ensured once here; query-time connections are
	// opened per call by the structured executor.
	catalog, err := sqlite.NewCatalogDB(ctx, appCfg.GetCatalogPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize catalog storage")
	}
	if err := catalog.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close catalog bootstrap connection")
	}

	// 3. Providers
	ai := llm.NewOpenAI(openaiCfg)
	embedder := embedding.NewOpenAI(openaiCfg)

	index, err := vector.NewQdrant(qdrantCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to vector index")
	}
	services = append(services, srv.NewCleanup(index.Close))

	if err := retrieval.ValidateDimensions(ctx, embedder, index); err != nil {
		logger.Fatal().Err(err).Msg("embedding model and vector index are misconfigured")
	}

	// 4. Retrieval engine
	structured := retrieval.NewStructuredExecutor(appCfg.GetCatalogPath(), retrievalCfg.SQLTimeout)
	semantic := retrieval.NewSemanticExecutor(embedder, index, retrievalCfg.TopK, retrievalCfg.EmbedTimeout, retrievalCfg.SearchTimeout)
	coordinator := retrieval.NewCoordinator(structured, semantic)

	// 5. Tools
	registry := tools.NewRegistry()
	tools.RegisterCatalogSearch(registry, coordinator)
	if appCfg.EnableOrderLookup {
		bcCfg := config.NewBigCommerceConfig(ctx)
		tools.RegisterOrderLookup(registry, commerce.NewBigCommerce(bcCfg))
	}

	return &application{
		appCfg:       appCfg,
		retrievalCfg: retrievalCfg,
		registry:     registry,
		deps: session.Deps{
			AI:       ai,
			Registry: registry,
			Repo:     messagesRepo,
		},
		services: services,
	}
}

func (a *application) close(ctx context.Context) {
	for i := len(a.services) - 1; i >= 0; i-- {
		if err := a.services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", a.services[i])
		}
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
