// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dotandev/sunfee/internal/errors"
)

// Config represents the general configuration for sunfee
type Config struct {
	NodeURL  string  `json:"node_url,omitempty"`
	Network  Network `json:"network,omitempty"`
	LogLevel string  `json:"log_level,omitempty"`
	APIKey   string  `json:"api_key,omitempty"`
	// ParamTTL is how long fetched chain parameters stay fresh in the
	// local cache. Aligned with the chain's maintenance period cadence.
	ParamTTL time.Duration `json:"param_ttl,omitempty"`
	HistoryPath string `json:"history_path,omitempty"`
}

var defaultConfig = &Config{
	NodeURL:     MainnetNodeURL,
	Network:     NetworkMainnet,
	LogLevel:    "info",
	ParamTTL:    15 * time.Minute,
	HistoryPath: filepath.Join(os.ExpandEnv("$HOME"), ".sunfee", "history.db"),
}

// Load loads the configuration from environment variables and TOML files
func Load() (*Config, error) {
	cfg := &Config{
		NodeURL:     getEnv("SUNFEE_NODE_URL", defaultConfig.NodeURL),
		Network:     Network(getEnv("SUNFEE_NETWORK", string(defaultConfig.Network))),
		LogLevel:    getEnv("SUNFEE_LOG_LEVEL", defaultConfig.LogLevel),
		APIKey:      getEnv("SUNFEE_API_KEY", ""),
		ParamTTL:    defaultConfig.ParamTTL,
		HistoryPath: getEnv("SUNFEE_HISTORY_PATH", defaultConfig.HistoryPath),
	}

	if ttlEnv := os.Getenv("SUNFEE_PARAM_TTL_SECONDS"); ttlEnv != "" {
		if seconds, err := strconv.Atoi(ttlEnv); err == nil && seconds > 0 {
			cfg.ParamTTL = time.Duration(seconds) * time.Second
		}
	}

	if err := cfg.loadFromFile(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	paths := []string{
		".sunfee.toml",
		filepath.Join(os.ExpandEnv("$HOME"), ".sunfee.toml"),
		"/etc/sunfee/config.toml",
	}

	for _, path := range paths {
		if err := c.loadTOML(path); err == nil {
			return nil
		}
	}

	return nil
}

func (c *Config) loadTOML(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return c.parseTOML(string(data))
}

func (c *Config) parseTOML(content string) error {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"'")

		switch key {
		case "node_url":
			c.NodeURL = value
		case "network":
			c.Network = Network(value)
		case "log_level":
			c.LogLevel = value
		case "api_key":
			c.APIKey = value
		case "history_path":
			c.HistoryPath = value
		case "param_ttl_seconds":
			if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
				c.ParamTTL = time.Duration(seconds) * time.Second
			}
		}
	}

	return nil
}

func (c *Config) Validate() error {
	if c.NodeURL == "" {
		return fmt.Errorf("node_url cannot be empty")
	}

	if c.Network != "" && !validNetworks[string(c.Network)] {
		return errors.WrapInvalidNetwork(string(c.Network))
	}

	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Node: %s, Network: %s, LogLevel: %s, ParamTTL: %s}",
		c.NodeURL, c.Network, c.LogLevel, c.ParamTTL,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func DefaultConfig() *Config {
	return &Config{
		NodeURL:     defaultConfig.NodeURL,
		Network:     defaultConfig.Network,
		LogLevel:    defaultConfig.LogLevel,
		ParamTTL:    defaultConfig.ParamTTL,
		HistoryPath: defaultConfig.HistoryPath,
	}
}

func NewConfig(nodeURL string, network Network) *Config {
	return &Config{
		NodeURL:     nodeURL,
		Network:     network,
		LogLevel:    defaultConfig.LogLevel,
		ParamTTL:    defaultConfig.ParamTTL,
		HistoryPath: defaultConfig.HistoryPath,
	}
}

func (c *Config) WithLogLevel(level string) *Config {
	c.LogLevel = level
	return c
}

func (c *Config) WithParamTTL(ttl time.Duration) *Config {
	c.ParamTTL = ttl
	return c
}

func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}
