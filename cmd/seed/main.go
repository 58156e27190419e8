// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"droppos/internal/config"
	"droppos/internal/core/types"
	"droppos/internal/domain/catalog"
	"droppos/internal/domain/shop"
	"droppos/internal/infrastructure/storage/postgres"
	"droppos/internal/infrastructure/storage/postgres/catalog_repo"
	"droppos/internal/infrastructure/storage/postgres/shop_repo"
	"droppos/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.DSN()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.InitSchema(ctx, pool); err != nil {
		log.Fatalw("failed to initialize schema", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	if err := seedShopInfo(ctx, shop_repo.NewShopRepo(txManager)); err != nil {
		log.Fatalw("failed to seed shop info", "error", err)
	}

	if err := seedItems(ctx, catalog_repo.NewItemRepo(txManager)); err != nil {
		log.Fatalw("failed to seed items", "error", err)
	}

	log.Info("seeding complete")
}

func seedShopInfo(ctx context.Context, repo shop.Repository) error {
	phone := "+91 487 2334455"
	return repo.UpdateInfo(ctx, &shop.Info{
		Name:    "DROP",
		Tagline: "DRESS FOR LESS",
		Address: "Kuriachira, Thrissur, Kerala",
		Phone:   &phone,
	})
}

func seedItems(ctx context.Context, repo catalog.Repository) error {
	items := []*catalog.Item{
		{Code: "TSH001", Name: "Cotton T-Shirt", Price: types.MustMoney("299.00")},
		{Code: "JNS001", Name: "Slim Fit Jeans", Price: types.MustMoney("999.00")},
		{Code: "SRT001", Name: "Formal Shirt", Price: types.MustMoney("599.00")},
		{Code: "KRT001", Name: "Printed Kurti", Price: types.MustMoney("449.00")},
		{Code: "SCK001", Name: "Ankle Socks Pack", Price: types.MustMoney("149.00")},
	}

	for _, item := range items {
		if err := repo.Create(ctx, item); err != nil {
			logger.Warn(ctx, "skipping item", "code", item.Code, "error", err)
			continue
		}
		logger.Info(ctx, "item seeded", "code", item.Code, "id", item.ID)
	}
	return nil
}
