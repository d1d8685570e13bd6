// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config loads and saves the flat key=value configuration file
// used by binaries embedding the library. The core packages never read
// it; they take explicit protocol parameters.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the process-level settings of a betchain binary.
type Config struct {
	// DataDir is where the embedded emulator keeps its database.
	DataDir string

	// Network selects the protocol parameter set: "mainnet",
	// "testnet", or "emulator".
	Network string

	// GatewayURL is the base URL of the ledger gateway. Unused when
	// Network is "emulator".
	GatewayURL string

	// GatewayKey is the bearer token presented to the gateway. Empty
	// disables authentication.
	GatewayKey string

	LogLevel string
	LogFile  string // empty logs to stderr
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:  filepath.Join(home, ".betchain"),
		Network:  "emulator",
		LogLevel: "info",
	}
}

// LoadConfig reads a key=value configuration file. Missing keys keep
// their defaults; unknown keys are ignored so older binaries can read
// newer files.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "gatewayurl":
			cfg.GatewayURL = value
		case "gatewaykey":
			cfg.GatewayKey = value
		case "loglevel":
			cfg.LogLevel = value
		case "logfile":
			cfg.LogFile = value
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as a key=value file, creating
// parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# betchain configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	if cfg.GatewayURL != "" {
		fmt.Fprintf(&b, "gatewayurl = %s\n", cfg.GatewayURL)
	}
	if cfg.GatewayKey != "" {
		fmt.Fprintf(&b, "gatewaykey = %s\n", cfg.GatewayKey)
	}
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	if cfg.LogFile != "" {
		fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
