// Package config loads the meilimap startup configuration from an
// optional yaml file and the MEILIMAP_ environment, in that order of
// precedence, on top of the documented defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"meilimap/mapper"
	"meilimap/msearch"
)

const envPrefix = "MEILIMAP_"

// Config is the flat option set consumed at startup. Host and APIKey are
// required by the client constructor; everything else has a default.
type Config struct {
	Host                          string `koanf:"host"`
	APIKey                        string `koanf:"api_key"`
	RequireIndexAnnotation        bool   `koanf:"require_index_annotation"`
	UseTypeNameAsDefaultIndexName bool   `koanf:"use_type_name_as_default_index_name"`
	AutoSyncPrimaryKey            bool   `koanf:"auto_sync_primary_key"`
	AutoSyncSettings              bool   `koanf:"auto_sync_settings"`
	SynchronizeRemoteCalls        bool   `koanf:"synchronize_remote_calls"`
}

// Default returns the configuration with every optional key at its
// documented default and the required keys empty.
func Default() Config {
	return Config{
		RequireIndexAnnotation: true,
		AutoSyncPrimaryKey:     true,
		AutoSyncSettings:       true,
	}
}

// Load reads path (skipped when empty) and then the MEILIMAP_ environment
// over it. Keys absent from both keep their defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps MEILIMAP_API_KEY to api_key and so on.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// ClientConfig adapts the connection keys for msearch.New.
func (c *Config) ClientConfig() msearch.Config {
	return msearch.Config{Host: c.Host, APIKey: c.APIKey}
}

// MapperOptions adapts the policy keys for the mapper runtime.
func (c *Config) MapperOptions() mapper.Options {
	return mapper.Options{
		RequireIndexAnnotation:        c.RequireIndexAnnotation,
		UseTypeNameAsDefaultIndexName: c.UseTypeNameAsDefaultIndexName,
		AutoSyncPrimaryKey:            c.AutoSyncPrimaryKey,
		AutoSyncSettings:              c.AutoSyncSettings,
		SynchronizeRemoteCalls:        c.SynchronizeRemoteCalls,
	}
}

// Connect builds the search client and mapper runtime the configuration
// describes. Extra options are applied after the configured ones.
func (c *Config) Connect(opts ...mapper.Option) (*mapper.Runtime, error) {
	client, err := msearch.New(c.ClientConfig())
	if err != nil {
		return nil, err
	}
	opts = append([]mapper.Option{mapper.WithOptions(c.MapperOptions())}, opts...)
	return mapper.NewRuntime(client, opts...), nil
}
