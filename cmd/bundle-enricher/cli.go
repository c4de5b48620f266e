// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/infrastructure/config"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/env"
)

// parseCLIFlags sets up, parses, and returns all CLI flags
func parseCLIFlags() *config.CLIConfig {
	// CLI flags with ENV > Default precedence
	debug := flag.Bool("d", env.GetBool("DEBUG", false), "enable debug logging")
	port := flag.String("p", env.GetString("PORT", strconv.Itoa(constants.DefaultPort)), "health checks port")
	bind := flag.String("bind", env.GetString("BIND", constants.DefaultBindAddress), "interface to bind on")
	simpleHealth := flag.Bool("simple-health", env.GetBool("SIMPLE_HEALTH", false), "use simple 'OK' health responses")

	configCheck := flag.Bool("check-config", false, "Check configuration and exit")
	help := flag.Bool("help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "LFX Bundle Enricher\n")
		fmt.Fprintf(os.Stderr, "===================\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])

		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  -d               Enable debug logging with source location\n")
		fmt.Fprintf(os.Stderr, "  -p <port>        Health check port (default: 8080)\n")
		fmt.Fprintf(os.Stderr, "  --bind <iface>   Interface to bind on (default: *, use 0.0.0.0 for all)\n")
		fmt.Fprintf(os.Stderr, "  --simple-health  Use simple 'OK' health responses for K8s\n")
		fmt.Fprintf(os.Stderr, "  --check-config   Check configuration and exit\n")
		fmt.Fprintf(os.Stderr, "  --help           Show this help message\n\n")

		fmt.Fprintf(os.Stderr, "Environment Variables:\n")
		fmt.Fprintf(os.Stderr, "  Service Config:\n")
		fmt.Fprintf(os.Stderr, "    DEBUG=1                        Enable debug logging\n")
		fmt.Fprintf(os.Stderr, "    PORT=8080                      Health check port\n")
		fmt.Fprintf(os.Stderr, "    BIND=0.0.0.0                   Bind interface\n")
		fmt.Fprintf(os.Stderr, "    SIMPLE_HEALTH=1                Use simple health responses\n\n")
		fmt.Fprintf(os.Stderr, "  Catalog:\n")
		fmt.Fprintf(os.Stderr, "    CATALOG_URL=http://...         Service catalog base URL\n")
		fmt.Fprintf(os.Stderr, "    CATALOG_TIMEOUT=15s            Per-attempt request timeout\n")
		fmt.Fprintf(os.Stderr, "    CATALOG_MAX_ATTEMPTS=5         Attempts before giving up\n")
		fmt.Fprintf(os.Stderr, "    CATALOG_RETRY_DELAY=5s         Fixed delay between attempts\n")
		fmt.Fprintf(os.Stderr, "    CATALOG_ENRICHMENT_ENABLED=1   Enable service catalog enrichment\n\n")
		fmt.Fprintf(os.Stderr, "  Infrastructure:\n")
		fmt.Fprintf(os.Stderr, "    LOG_LEVEL=info                 Logging level (debug,info,warn,error)\n")
		fmt.Fprintf(os.Stderr, "    LOG_FORMAT=json                Log format (json,text)\n")
		fmt.Fprintf(os.Stderr, "    NATS_URL=nats://...            NATS server URL\n")
		fmt.Fprintf(os.Stderr, "    NATS_INPUT_SUBJECT=...         Subject carrying pending bundles\n")
		fmt.Fprintf(os.Stderr, "    NATS_OUTPUT_SUBJECT=...        Subject receiving enriched bundles\n")
		fmt.Fprintf(os.Stderr, "    NATS_QUEUE=...                 Queue group name\n\n")

		fmt.Fprintf(os.Stderr, "Configuration precedence: CLI flags > Environment variables > Defaults\n\n")
		fmt.Fprintf(os.Stderr, "Health endpoints:\n")
		fmt.Fprintf(os.Stderr, "  GET /health            Detailed health status (JSON)\n")
		fmt.Fprintf(os.Stderr, "  GET /livez             Kubernetes liveness probe\n")
		fmt.Fprintf(os.Stderr, "  GET /readyz            Kubernetes readiness probe\n\n")
	}

	flag.Parse()

	return &config.CLIConfig{
		Port:         *port,
		Debug:        *debug,
		Bind:         *bind,
		SimpleHealth: *simpleHealth,
		ConfigCheck:  *configCheck,
		Help:         *help,
	}
}

// handleEarlyExits processes flags that cause early program termination
func handleEarlyExits(flags *config.CLIConfig, logger *slog.Logger) {
	if flags.Help {
		flag.Usage()
		os.Exit(0)
	}

	if flags.ConfigCheck {
		logger.Info("Configuration check requested")
		if err := checkConfig(flags); err != nil {
			logger.Error("Configuration validation failed", "error", err.Error())
			os.Exit(1)
		}
		logger.Info("Configuration validation completed", "status", "valid")
		os.Exit(0)
	}
}

// checkConfig loads the environment configuration, applies flag overrides and validates it
func checkConfig(flags *config.CLIConfig) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := flags.ApplyOverrides(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}
