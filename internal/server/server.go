// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/handler"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	stopOnce sync.Once
	stopped  chan struct{}
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
		stopped:    make(chan struct{}),
	}, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT arrives or Shutdown is
// called, then drains open connections.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	select {
	case <-ctx.Done():
		s.Shutdown()
	case <-s.stopped:
	}
	s.logger.Info().Msg("server Shutdown gracefully")
}

func (s *server) Shutdown() {
	s.stopOnce.Do(func() {
		s.httpServer.Shutdown()
		close(s.stopped)
	})
}
