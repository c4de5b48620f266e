// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListenAddr(t *testing.T) {
	tests := []struct {
		bind     string
		port     int
		expected string
	}{
		{"*", 8080, ":8080"},
		{"", 9090, ":9090"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 8081, "127.0.0.1:8081"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, listenAddr(tt.bind, tt.port))
		})
	}
}
