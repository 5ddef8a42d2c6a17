// Copyright 2025 DASys Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config controls the processor daemon. Sources, in increasing precedence:
// built-in defaults, TOML config file, environment, command line flags.
type Config struct {
	Connect    string `toml:"connect"     env:"ALICA_TP_CONNECT"`
	LogLevel   string `toml:"log_level"   env:"ALICA_TP_LOG_LEVEL"`
	Standalone bool   `toml:"standalone"  env:"ALICA_TP_STANDALONE"`
}

func defaultConfig() *Config {
	return &Config{
		Connect:  "localhost:4004",
		LogLevel: "info",
	}
}

// LoadConfig builds the configuration from the optional TOML file at path
// and the environment
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level name onto a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// Logger returns a text logger writing to stderr at the configured level
func (c *Config) Logger() (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	), nil
}
