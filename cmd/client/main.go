// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-soup-sync/internal/adapter"
	"github.com/MKhiriev/go-soup-sync/internal/client"
	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/service"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/internal/tui"
	"github.com/MKhiriev/go-soup-sync/internal/workers"
	"github.com/MKhiriev/go-soup-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const pingTimeout = 3 * time.Second

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("soup-sync-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("soup-sync-client", cfg.Log.FilePath, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	if cfg.App.ClientID != "" {
		log.UpdateContext(func(c zerolog.Context) zerolog.Context { return c.Str("client_id", cfg.App.ClientID) })
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	ctx = log.WithContext(ctx)

	creds := adapter.NewStaticCredentials(cfg.Adapter.Token)
	remote, err := adapter.NewHTTPRemoteAdapter(cfg.Adapter, creds, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	network, err := adapter.NewHTTPNetwork(cfg.Adapter, creds, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create network")
	}
	pingServer(ctx, network, log)

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	services := service.NewClientServices(storages, remote, cfg, log)

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	ui, err := tui.New(services, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services.Stores, ui, workers.NewWorkers(services.SyncJob), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

// pingServer logs the server version; the client starts offline when the
// server cannot be reached.
func pingServer(ctx context.Context, network adapter.Network, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := network.Send(ctx, adapter.NetworkRequest{Path: "/api/version"})
	if err != nil {
		log.Warn().Err(err).Msg("server is not reachable")
		return
	}
	log.Info().Str("server_version", string(resp.Body)).Msg("server is reachable")
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
