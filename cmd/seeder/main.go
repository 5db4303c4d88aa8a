package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"estate_inquiry/internal/adapters/observability"
	redisad "estate_inquiry/internal/adapters/redis"
	"estate_inquiry/internal/app"
	"estate_inquiry/internal/catalog"
	"estate_inquiry/internal/shared"
	mysqlrepo "estate_inquiry/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	c, err := catalog.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("catalog invalid")
	}
	log.Info().
		Int("residences", len(c.Residences())).
		Int("agents", len(c.Agents())).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// 2) agents, then residences with a bounded worker pool, then cache eviction
	res, err := app.NewSeeder(repo, cache, cfg.SeedWorkers).Run(ctx, c.Agents(), c.Residences())
	log.Info().
		Int("agents", res.Agents).
		Int("seeded", res.Seeded).
		Int("failed", res.Failed).
		Int("evicted", res.Evicted).
		Msg("seeding finished")
	if err != nil {
		log.Fatal().Err(err).Msg("seeding incomplete")
	}
	log.Info().Msg("seeding completed")
}
