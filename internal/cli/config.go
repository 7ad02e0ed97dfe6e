package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/aepplanner/pkg/cache"
	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/export"
	"github.com/matzehuels/aepplanner/pkg/server"
)

// Config is the content of config.toml.
//
//	project = "retail.yaml"
//
//	[cache]
//	dir = "/var/cache/aepplanner"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
//
//	[export]
//	format = "mermaid"
type Config struct {
	Project string       `toml:"project"`
	Cache   CacheConfig  `toml:"cache"`
	Server  ServerConfig `toml:"server"`
	Export  ExportConfig `toml:"export"`
}

type CacheConfig struct {
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type ExportConfig struct {
	Format string `toml:"format"`
}

// duration decodes TOML strings such as "36h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{
		Cache:  CacheConfig{TTL: duration{cache.DefaultTTL}},
		Server: ServerConfig{Addr: server.DefaultAddr},
		Export: ExportConfig{Format: string(export.FormatMermaid)},
	}
}

// ReadConfig decodes the file at path over the defaults. Unknown keys are
// rejected so typos surface.
func ReadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("read config %s: unknown key %q", path, undecoded[0].String())
	}
	if _, err := export.ParseFormat(cfg.Export.Format); err != nil {
		return cfg, fmt.Errorf("read config %s: export.format: %w", path, err)
	}
	if cfg.Cache.RedisURL != "" {
		if err := apperrors.ValidateRedisURL(cfg.Cache.RedisURL); err != nil {
			return cfg, fmt.Errorf("read config %s: cache.redis_url: %w", path, err)
		}
	}
	return cfg, nil
}

// loadConfig reads --config, or the default config file when it exists.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg, err := ReadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}
