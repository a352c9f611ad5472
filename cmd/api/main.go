// @title        Gym System API
// @version      1.0
// @description  Reservation, credit and check-in service for a multi-discipline gym.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitpass/gym-system/internal/api"
	"github.com/fitpass/gym-system/internal/infrastructure/config"
	mongodb "github.com/fitpass/gym-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fitpass/gym-system/internal/infrastructure/db/redis"
	"github.com/fitpass/gym-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.New("gym-api", logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if err := mongodb.NewReservationStore(client, db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("reservation indexes failed")
	}
	if err := mongodb.NewMemberRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("member indexes failed")
	}

	e, dispatcher := api.NewRouter(client, db, rdb, cfg, log)
	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
