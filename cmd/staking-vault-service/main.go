package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/cmd/staking-vault-service/cli"
	"github.com/babylonchain/staking-vault-service/cmd/staking-vault-service/scripts"
	"github.com/babylonchain/staking-vault-service/internal/api"
	"github.com/babylonchain/staking-vault-service/internal/clients"
	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/db"
	"github.com/babylonchain/staking-vault-service/internal/db/model"
	"github.com/babylonchain/staking-vault-service/internal/keeper"
	"github.com/babylonchain/staking-vault-service/internal/observability/healthcheck"
	"github.com/babylonchain/staking-vault-service/internal/observability/metrics"
	"github.com/babylonchain/staking-vault-service/internal/queue"
	"github.com/babylonchain/staking-vault-service/internal/services"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	// initialize metrics with the metrics address from config
	metrics.Init(cfg.Metrics.GetMetricsAddr())

	err = model.Setup(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up vault db model")
	}
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	defer func() {
		if err := dbClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error while disconnecting db client")
		}
	}()

	publisher, err := queue.New(&cfg.Queue, dbClient)
	if err != nil {
		log.Fatal().Err(err).Msg("error while connecting to the event queue")
	}
	defer publisher.Close()

	// Check if the replay flag is set
	if cli.GetReplayFlag() {
		log.Info().Msg("Replay flag is set. Starting replay of unpublished events.")
		err := scripts.ReplayUnpublishedEvents(ctx, publisher, dbClient)
		if err != nil {
			log.Fatal().Err(err).Msg("error while replaying unpublished events")
		}
		return
	}

	externalClients := clients.New(cfg)
	services, err := services.New(ctx, cfg, dbClient, externalClients.Node, externalClients.Node, publisher)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up vault services layer")
	}

	if err := healthcheck.StartHealthCheckCron(ctx, publisher, services, cfg.Server.HealthCheckInterval); err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	vaultKeeper, err := keeper.New(cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up vault keeper")
	}
	vaultKeeper.Start(ctx)

	apiServer, err := api.New(ctx, cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up vault api service")
	}
	go func() {
		<-ctx.Done()
		if err := apiServer.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error while shutting down vault api service")
		}
	}()
	if err = apiServer.Start(); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("error while starting vault api service")
	}
}
