// Package config provides configuration loading for kbengine.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (KBENGINE_SERVER_PORT, KBENGINE_KNOWLEDGE_DIR, ...)
//  2. YAML config file, when a path is given
//  3. Defaults
package config

import (
	"fmt"
	"os"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "KBENGINE_"

// Config is the full kbengine configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Knowledge KnowledgeConfig `koanf:"knowledge"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// KnowledgeConfig holds knowledge source settings.
type KnowledgeConfig struct {
	// Dir is the directory holding the YAML knowledge sources.
	Dir string `koanf:"dir"`
	// TopK bounds search results returned to callers.
	TopK int `koanf:"top_k"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

const defaultYAML = `
server:
  host: localhost
  port: 9180
  shutdown_timeout: 10s
knowledge:
  dir: ./knowledge
  top_k: 5
logging:
  level: info
  format: json
`

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing precedence.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider([]byte(defaultYAML)), koanfyaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), koanfyaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envTransform maps KBENGINE_SERVER_SHUTDOWN_TIMEOUT to
// server.shutdown_timeout. Only the first underscore becomes a separator;
// the config tree is two levels deep.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	return strings.Join(parts, ".")
}

// Validate checks the loaded configuration for usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Knowledge.Dir == "" {
		return fmt.Errorf("knowledge dir is required")
	}
	if c.Knowledge.TopK <= 0 {
		return fmt.Errorf("knowledge top_k must be positive, got %d", c.Knowledge.TopK)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}
	return nil
}
