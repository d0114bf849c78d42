package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the sync server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the client's local store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync groups the sync-engine tuning knobs used by the scheduler, the
// background coordinator, and the delegation bus. Defaults are applied by
// GetClientConfig for any zero field.
type ClientSync struct {
	Interval         time.Duration
	Cooldown         time.Duration
	BackoffBase      time.Duration
	BackoffCap       time.Duration
	ReplyTimeout     time.Duration
	MaxClientRetries int
	MaxSameCount     int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains sync-engine tuning knobs.
	Sync ClientSync
}

// Built-in defaults of the sync engine. Config values override them; the
// constants themselves match the documented protocol timings.
const (
	DefaultSyncInterval     = 30 * time.Second
	DefaultCooldown         = 10 * time.Second
	DefaultBackoffBase      = 2 * time.Second
	DefaultBackoffCap       = 60 * time.Second
	DefaultReplyTimeout     = 5 * time.Second
	DefaultMaxClientRetries = 3
	DefaultMaxSameCount     = 3
)

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration, applying sync-engine defaults for any
// knob left unset.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			Interval:         cfg.Sync.Interval,
			Cooldown:         cfg.Sync.Cooldown,
			BackoffBase:      cfg.Sync.BackoffBase,
			BackoffCap:       cfg.Sync.BackoffCap,
			ReplyTimeout:     cfg.Sync.ReplyTimeout,
			MaxClientRetries: cfg.Sync.MaxClientRetries,
			MaxSameCount:     cfg.Sync.MaxSameCount,
		},
	}
	clientCfg.Sync.applyDefaults()
	if clientCfg.Adapter.RequestTimeout <= 0 {
		clientCfg.Adapter.RequestTimeout = 15 * time.Second
	}

	return clientCfg, clientCfg.validate()
}

func (s *ClientSync) applyDefaults() {
	if s.Interval <= 0 {
		s.Interval = DefaultSyncInterval
	}
	if s.Cooldown <= 0 {
		s.Cooldown = DefaultCooldown
	}
	if s.BackoffBase <= 0 {
		s.BackoffBase = DefaultBackoffBase
	}
	if s.BackoffCap <= 0 {
		s.BackoffCap = DefaultBackoffCap
	}
	if s.ReplyTimeout <= 0 {
		s.ReplyTimeout = DefaultReplyTimeout
	}
	if s.MaxClientRetries <= 0 {
		s.MaxClientRetries = DefaultMaxClientRetries
	}
	if s.MaxSameCount <= 0 {
		s.MaxSameCount = DefaultMaxSameCount
	}
}
