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

// alica-messages-tp is the transaction processor daemon for the
// alica_messages transaction family. It connects to a ledger validator,
// registers the family and processes submitted transactions until stopped.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dasys-lab/alica-messages-tp/handler"
	"github.com/dasys-lab/alica-messages-tp/messages"
	"github.com/dasys-lab/alica-messages-tp/payload"
	"github.com/dasys-lab/alica-messages-tp/processor"
	"github.com/dasys-lab/alica-messages-tp/state"
)

const (
	familyName    = "alica_messages"
	familyVersion = "0.1.0"
)

type programFlags struct {
	flagset    *flag.FlagSet
	configFile string
	connect    string
	logLevel   string
	standalone bool
}

func newProgramFlags() *programFlags {
	f := &programFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.configFile,
		"config",
		"",
		"path to TOML config file",
	)
	f.flagset.StringVar(
		&f.connect,
		"connect",
		"",
		"validator address to connect to in address:port format",
	)
	f.flagset.StringVar(
		&f.logLevel,
		"log-level",
		"",
		"log level (debug, info, warn, error)",
	)
	f.flagset.BoolVar(
		&f.standalone,
		"standalone",
		false,
		"process payloads from stdin against in-memory state instead of connecting to a validator",
	)
	return f
}

func (f *programFlags) apply(cfg *Config) {
	if f.connect != "" {
		cfg.Connect = f.connect
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.standalone {
		cfg.Standalone = true
	}
}

func main() {
	flags := newProgramFlags()
	if err := flags.flagset.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	cfg, err := LoadConfig(flags.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}
	flags.apply(cfg)
	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %s\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	family := handler.NewTransactionFamily(familyName, []string{familyVersion})
	h := handler.NewHandler(
		family,
		payload.NewPipeFormat(),
		messages.NewDefaultRegistry(),
		logger,
	)

	if cfg.Standalone {
		if err := runStandalone(h, logger); err != nil {
			logger.Error("standalone run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	p, err := processor.New(
		processor.WithDialAddress(cfg.Connect),
		processor.WithHandler(h),
		processor.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create processor", "error", err)
		os.Exit(1)
	}
	if err := p.Start(); err != nil {
		logger.Error("failed to start processor", "error", err)
		os.Exit(1)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalChan
		logger.Info("shutting down", "signal", sig.String())
		p.Stop()
	}()

	for err := range p.ErrorChan() {
		logger.Error("processor error", "error", err)
		os.Exit(1)
	}
}

// runStandalone applies one pipe-separated payload per stdin line against
// in-memory state and prints each outcome. Useful for trying out payloads
// without a validator.
func runStandalone(h *handler.Handler, logger *slog.Logger) error {
	ctx := state.NewMemoryContext()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		tx := &handler.Transaction{
			SignerPublicKey: "standalone",
			PayloadBytes:    scanner.Bytes(),
		}
		if err := h.Apply(tx, ctx); err != nil {
			fmt.Printf("rejected: %s\n", err)
			continue
		}
		fmt.Println("committed")
	}
	return scanner.Err()
}
