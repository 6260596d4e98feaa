//go:build linux

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/pmmon/pkg/config"
)

func TestSourceName(t *testing.T) {
	cfg := config.Default()
	cfg.Serial.Port = "/dev/ttyAMA0"

	assert.Equal(t, "/dev/ttyAMA0", sourceName(cfg, false))
	assert.Equal(t, "mocked sensor", sourceName(cfg, true))
}
