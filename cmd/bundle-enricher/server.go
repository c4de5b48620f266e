// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/container"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
)

// createHTTPServer creates and configures the HTTP server with health check routes
func createHTTPServer(container *container.Container, bind string) *http.Server {
	mux := http.NewServeMux()
	container.HealthHandler.RegisterRoutes(mux)

	return &http.Server{
		Addr:              listenAddr(bind, container.Config.Server.Port),
		Handler:           mux,
		ReadTimeout:       container.Config.Server.ReadTimeout,
		WriteTimeout:      container.Config.Server.WriteTimeout,
		ReadHeaderTimeout: 3 * time.Second, // Security: prevent slowloris attacks
	}
}

// listenAddr builds the listen address, treating "*" as all interfaces
func listenAddr(bind string, port int) string {
	if bind == constants.DefaultBindAddress || bind == "" {
		return fmt.Sprintf(":%d", port)
	}
	return fmt.Sprintf("%s:%d", bind, port)
}

// startHTTPServer starts the HTTP server in a goroutine with logging
func startHTTPServer(server *http.Server, container *container.Container, bind string, logger *slog.Logger) {
	go func() {
		logger.Info("Starting health check HTTP server",
			"port", container.Config.Server.Port,
			"bind", bind,
			"addr", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server error", "error", err.Error())
			os.Exit(1)
		}
	}()
}
