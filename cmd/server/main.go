package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	webAdapter "github.com/4ugusta/chaibooks-backend/internal/adapters/web"
	"github.com/4ugusta/chaibooks-backend/internal/app"
	"github.com/4ugusta/chaibooks-backend/internal/config"
	"github.com/4ugusta/chaibooks-backend/internal/db"
	"github.com/4ugusta/chaibooks-backend/internal/logger"
	"github.com/4ugusta/chaibooks-backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	pg := store.NewPostgres(pool)
	if err := pg.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	svc := app.NewAppService(pg)
	handler := webAdapter.NewHandler(svc, cfg.CORSOrigins)

	log.Info().Str("addr", cfg.Addr()).Msg("server starting")
	if err := http.ListenAndServe(cfg.Addr(), handler); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
