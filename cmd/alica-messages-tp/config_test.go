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
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error loading config: %s", err)
	}
	if cfg.Connect != "localhost:4004" {
		t.Fatalf("unexpected default connect address: %s", cfg.Connect)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel)
	}
	if cfg.Standalone {
		t.Fatalf("standalone enabled by default")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.toml")
	content := "connect = \"validator:9999\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error writing config file: %s", err)
	}
	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("unexpected error loading config: %s", err)
	}
	if cfg.Connect != "validator:9999" {
		t.Fatalf("unexpected connect address: %s", cfg.Connect)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.toml")
	content := "connect = \"validator:9999\"\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error writing config file: %s", err)
	}
	t.Setenv("ALICA_TP_CONNECT", "other:4004")
	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("unexpected error loading config: %s", err)
	}
	if cfg.Connect != "other:4004" {
		t.Fatalf("unexpected connect address: %s", cfg.Connect)
	}
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error, got none")
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogLevel = "debug"
	level, err := cfg.SlogLevel()
	if err != nil {
		t.Fatalf("unexpected error mapping log level: %s", err)
	}
	if level != slog.LevelDebug {
		t.Fatalf("unexpected level: %v", level)
	}
	cfg.LogLevel = "noisy"
	if _, err := cfg.SlogLevel(); err == nil {
		t.Fatalf("expected error, got none")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	flags := newProgramFlags()
	if err := flags.flagset.Parse([]string{"-connect", "flagged:4004", "-standalone"}); err != nil {
		t.Fatalf("unexpected error parsing flags: %s", err)
	}
	cfg := defaultConfig()
	flags.apply(cfg)
	if cfg.Connect != "flagged:4004" {
		t.Fatalf("unexpected connect address: %s", cfg.Connect)
	}
	if !cfg.Standalone {
		t.Fatalf("standalone flag not applied")
	}
}
