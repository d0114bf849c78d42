package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval foreground sync interval (e.g., "30s")
//	-sync-cooldown quiet period after a successful background sync
func ParseFlags() *StructuredConfig {
	var address string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var syncCooldown time.Duration

	flag.StringVar(&address, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Foreground sync interval (e.g., 30s)")
	flag.DurationVar(&syncCooldown, "sync-cooldown", 0, "Background sync cooldown (e.g., 10s)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{},
		Sync: Sync{
			Interval: syncInterval,
			Cooldown: syncCooldown,
		},
		JSONFilePath: jsonConfigPath,
	}
}
