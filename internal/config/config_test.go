package config_test

import (
	"testing"
	"time"

	"github.com/layer-3/campus/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"SECRET": "s3cr3t"})
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", cfg.Secret)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, config.BackendMongo, cfg.StoreBackend)
	assert.Equal(t, config.BackendMongo, cfg.RevocationBackend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URL)
	assert.Equal(t, "campus", cfg.Mongo.Name)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.False(t, cfg.EventsEnabled)
	assert.True(t, cfg.NeedsMongo())
	assert.False(t, cfg.NeedsRedis())
}

func TestLoad(t *testing.T) {
	cases := []struct {
		desc  string
		env   map[string]string
		err   bool
		check func(t *testing.T, cfg config.Config)
	}{
		{
			desc: "missing secret",
			env:  map[string]string{},
			err:  true,
		},
		{
			desc: "empty secret",
			env:  map[string]string{"SECRET": ""},
			err:  true,
		},
		{
			desc: "nested prefixes",
			env: map[string]string{
				"SECRET":                    "s",
				"CAMPUS_MONGO_URL":          "mongodb://db:27017",
				"CAMPUS_MONGO_NAME":         "school",
				"CAMPUS_REDIS_URL":          "redis://cache:6379/1",
				"CAMPUS_REVOCATION_BACKEND": "redis",
				"CAMPUS_STORE_BACKEND":      "memory",
			},
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URL)
				assert.Equal(t, "school", cfg.Mongo.Name)
				assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
				assert.False(t, cfg.NeedsMongo())
				assert.True(t, cfg.NeedsRedis())
			},
		},
		{
			desc: "custom ttl",
			env:  map[string]string{"SECRET": "s", "CAMPUS_TOKEN_TTL": "2h"},
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
			},
		},
		{
			desc: "unknown store backend",
			env:  map[string]string{"SECRET": "s", "CAMPUS_STORE_BACKEND": "postgres"},
			err:  true,
		},
		{
			desc: "unknown revocation backend",
			env:  map[string]string{"SECRET": "s", "CAMPUS_REVOCATION_BACKEND": "file"},
			err:  true,
		},
		{
			desc: "non positive ttl",
			env:  map[string]string{"SECRET": "s", "CAMPUS_TOKEN_TTL": "0s"},
			err:  true,
		},
		{
			desc: "bcrypt cost too low",
			env:  map[string]string{"SECRET": "s", "CAMPUS_BCRYPT_COST": "2"},
			err:  true,
		},
		{
			desc: "malformed duration",
			env:  map[string]string{"SECRET": "s", "CAMPUS_TOKEN_TTL": "soon"},
			err:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			cfg, err := config.LoadFrom(tc.env)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}
