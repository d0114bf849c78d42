// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_FirstNonZeroValueWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Adapter: Adapter{HTTPAddress: "http://env:8080"},
		},
		&StructuredConfig{
			Adapter: Adapter{HTTPAddress: "http://json:9090", RequestTimeout: 20 * time.Second},
			Storage: Storage{DB: DB{DSN: "ledger.db"}},
		},
	)

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "http://env:8080", cfg.Adapter.HTTPAddress, "the earlier source takes priority")
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout, "unset fields fall through to later sources")
	assert.Equal(t, "ledger.db", cfg.Storage.DB.DSN)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("STORAGE_DB_DATABASE_URI", "ledger.db")
	t.Setenv("ADAPTER_ADDRESS", "http://localhost:8080")
	t.Setenv("SYNC_INTERVAL", "45s")
	t.Setenv("SYNC_MAX_SAME_COUNT", "5")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "ledger.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 5, cfg.Sync.MaxSameCount)
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"storage": {"db": {"dsn": "ledger.db"}},
		"server": {"http_address": "0.0.0.0:8081", "request_timeout": "25s"},
		"adapter": {"http_address": "http://localhost:8081", "request_timeout": "10s"},
		"sync": {"interval": "1m", "cooldown": "15s", "max_client_retries": 4}
	}`), 0o600))

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, "ledger.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 25*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 15*time.Second, cfg.Sync.Cooldown)
	assert.Equal(t, 4, cfg.Sync.MaxClientRetries)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{name: "duration string", input: `"30s"`, want: 30 * time.Second},
		{name: "composite duration", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "raw nanoseconds", input: `2000000000`, want: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}

	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}

func TestClientSync_ApplyDefaults(t *testing.T) {
	var s ClientSync
	s.applyDefaults()

	assert.Equal(t, DefaultSyncInterval, s.Interval)
	assert.Equal(t, DefaultCooldown, s.Cooldown)
	assert.Equal(t, DefaultBackoffBase, s.BackoffBase)
	assert.Equal(t, DefaultBackoffCap, s.BackoffCap)
	assert.Equal(t, DefaultReplyTimeout, s.ReplyTimeout)
	assert.Equal(t, DefaultMaxClientRetries, s.MaxClientRetries)
	assert.Equal(t, DefaultMaxSameCount, s.MaxSameCount)
}

func TestClientSync_ApplyDefaultsKeepsConfiguredValues(t *testing.T) {
	s := ClientSync{Interval: time.Minute, MaxSameCount: 7}
	s.applyDefaults()

	assert.Equal(t, time.Minute, s.Interval)
	assert.Equal(t, 7, s.MaxSameCount)
	assert.Equal(t, DefaultCooldown, s.Cooldown)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := ClientConfig{
		Adapter: ClientAdapter{HTTPAddress: "http://localhost:8080", RequestTimeout: 15 * time.Second},
		Storage: ClientStorage{DB: ClientDB{DSN: "ledger.db"}},
	}
	assert.NoError(t, valid.validate())

	noDSN := valid
	noDSN.Storage.DB.DSN = ""
	assert.ErrorIs(t, noDSN.validate(), ErrInvalidStorageConfigs)

	noAdapter := valid
	noAdapter.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, noAdapter.validate(), ErrInvalidAdapterConfigs)
}

func TestServerConfig_Validate(t *testing.T) {
	valid := ServerConfig{
		Server:  Server{HTTPAddress: "0.0.0.0:8080"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/ledger"}},
	}
	assert.NoError(t, valid.validate())

	noAddress := valid
	noAddress.Server.HTTPAddress = ""
	assert.ErrorIs(t, noAddress.validate(), ErrInvalidServerConfigs)
}
