package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"wrapper.one/config"
	"wrapper.one/internal/api"
	"wrapper.one/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("config error")
	}

	logger := newLogger(cfg)

	st := initStore(cfg, logger)
	defer st.Close()

	router := api.SetupRouter(st, cfg, logger)

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("store", cfg.Store.Type).
		Msg("server starting")

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Log.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Env).
		Logger()
}

func initStore(cfg *config.Config, logger zerolog.Logger) store.Store {
	switch cfg.Store.Type {
	case "redis":
		st, err := store.NewRedisStore(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		}, cfg.Store.KeyPrefix)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		return st
	default:
		return store.NewMemoryStore(30 * time.Second)
	}
}
