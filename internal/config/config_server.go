package config

import (
	"fmt"
	"time"
)

// ServerConfig is the top-level server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	// Server contains listen address and timeout settings.
	Server Server
	// Storage contains the PostgreSQL connection settings.
	Storage Storage
}

// GetServerConfig builds and validates a server-specific config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		Server:  cfg.Server,
		Storage: cfg.Storage,
	}
	if serverCfg.Server.HTTPAddress == "" {
		serverCfg.Server.HTTPAddress = "0.0.0.0:8080"
	}
	if serverCfg.Server.RequestTimeout <= 0 {
		serverCfg.Server.RequestTimeout = 30 * time.Second
	}

	return serverCfg, serverCfg.validate()
}
