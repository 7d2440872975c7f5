package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pliu/parley/internal/config"
	"github.com/pliu/parley/internal/handlers"
	"github.com/pliu/parley/internal/logging"
	"github.com/pliu/parley/internal/store/sqlstore"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.Env)

	s, err := sqlstore.New(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer s.Close()

	r := handlers.NewRouter(cfg, s)

	log.Info().Str("port", cfg.Port).Str("driver", cfg.DatabaseDriver).Msg("starting server")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("server run")
	}
}
