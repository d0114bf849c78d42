package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sync-ledger/internal/config"
	"github.com/MKhiriev/go-sync-ledger/internal/handler"
	"github.com/MKhiriev/go-sync-ledger/internal/logger"
)

// server owns the configured transports and ties their lifetime to process
// signals.
type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, log *logger.Logger) (Server, error) {
	s := &server{logger: log}

	if cfg.HTTPAddress != "" {
		s.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, log)
	}
	if s.httpServer == nil {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

// RunServer serves the sync API until SIGTERM, SIGINT or SIGQUIT arrives,
// then shuts the transports down and returns.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.logger.Info().Str("address", s.httpServer.address()).Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-ctx.Done()
	s.Shutdown()
	s.logger.Info().Msg("server shut down gracefully")
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}
