package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/handler"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/server"
	"github.com/MKhiriev/go-tool-access/internal/service"
	"github.com/MKhiriev/go-tool-access/internal/store"
	"github.com/MKhiriev/go-tool-access/internal/workers"
	"github.com/MKhiriev/go-tool-access/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-tool-access", os.Getenv("LOG_LEVEL"))
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Info().
		Str("environment", cfg.App.Environment).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("billing_mode", cfg.App.BillingMode).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := []workers.Worker{
		workers.NewPurgeWorker(storages.AuthTokenRepository, storages.SessionRepository, cfg.Workers, log),
	}
	if handlers.GRPC != nil {
		background = append(background, workers.NewHealthWorker(storages, handlers.GRPC, cfg.Workers, log))
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(background...), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
