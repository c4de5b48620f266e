// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strconv"
)

// CLIConfig holds parsed command line flags and configuration overrides
type CLIConfig struct {
	Port         string
	Debug        bool
	Bind         string
	SimpleHealth bool
	ConfigCheck  bool
	Help         bool
}

// ApplyOverrides applies command line overrides on top of the environment
// configuration. Flags take precedence over environment variables.
func (c *CLIConfig) ApplyOverrides(cfg *AppConfig) error {
	if c.Port != "" {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			return fmt.Errorf("invalid port flag %q: %w", c.Port, err)
		}
		cfg.Server.Port = port
	}

	if c.Debug {
		cfg.Logging.Level = "debug"
	}

	return nil
}
