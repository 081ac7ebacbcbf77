package main

import (
	"context"
	"os"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/app/product/repo"
	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
	"github.com/light-bringer/catalog-service/internal/seed"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}
	logger.Init(logger.Config{Env: cfg.Env, Level: cfg.LogLevel, ServiceName: "catalog-seed"})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("seed")

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		log.Info("using Spanner emulator", zap.String("host", host))
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		log.Fatal("failed to create Spanner client", zap.Error(err))
	}
	defer client.Close()

	products, err := seed.Products(clock.System())
	if err != nil {
		log.Fatal("invalid seed catalog", zap.Error(err))
	}

	plan := seed.Plan(repo.NewProductWriter(), seed.Categories(), products)
	if err := committer.NewCommitter(client).Apply(ctx, plan); err != nil {
		log.Fatal("failed to apply seed plan", zap.Error(err))
	}

	log.Info("catalog seeded",
		zap.Int("categories", len(seed.Categories())),
		zap.Int("products", len(products)),
		zap.Int("mutations", plan.Count()),
	)
}
