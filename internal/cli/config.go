package cli

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds user-tunable settings shared by all commands.
type Config struct {
	Format string `koanf:"format"` // default output format
	Assets string `koanf:"assets"` // icon asset directory
	Cache  string `koanf:"cache"`  // cache backend: file, redis, none
	Redis  string `koanf:"redis"`  // redis URL for the redis backend
	Addr   string `koanf:"addr"`   // preview server listen address
}

// loadConfig loads configuration from defaults, the config file
// (~/.config/cloudgram/config.toml), environment variables (CLOUDGRAM_*),
// and command flags. Priority: flags > env > file > defaults.
func loadConfig(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"format": "png",
		"assets": "",
		"cache":  "file",
		"redis":  "redis://localhost:6379/0",
		"addr":   "localhost:8321",
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Config file is optional; a missing file is not an error.
	if path, err := configFile(); err == nil {
		_ = k.Load(file.Provider(path), toml.Parser())
	}

	if err := k.Load(env.Provider("CLOUDGRAM_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "CLOUDGRAM_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// mapProvider serves an in-memory map as a koanf provider, used for defaults.
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
