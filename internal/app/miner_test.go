package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powminer/internal/usecases"
)

func TestRunMiner(t *testing.T) {
	t.Setenv("DIFFICULTY", "1")
	t.Setenv("WORKERS", "1")

	var stdout, stderr bytes.Buffer
	err := RunMiner(context.Background(), Options{BlockData: "test", Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Block mined! Nonce: 25, Hash: 0342840f6340d15691f4be1c0e0157fb0983992c4f436c18267d41dbe6bb74a2")
	assert.Contains(t, stdout.String(), "Block valid: yes")
	assert.Contains(t, stderr.String(), "block mined")
}

func TestRunMinerAllCPUs(t *testing.T) {
	t.Setenv("DIFFICULTY", "2")
	t.Setenv("WORKERS", "0")
	t.Setenv("PROGRESS", "true")

	var stdout, stderr bytes.Buffer
	err := RunMiner(context.Background(), Options{BlockData: "test", Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Nonce: 304,")
}

func TestRunMinerRejectsDifficulty(t *testing.T) {
	t.Setenv("DIFFICULTY", "65")

	var stdout, stderr bytes.Buffer
	err := RunMiner(context.Background(), Options{Stdout: &stdout, Stderr: &stderr})
	require.Error(t, err)
	assert.True(t, usecases.IsConfigurationError(err))
	assert.Empty(t, stdout.String())
}

func TestRunMinerExhausted(t *testing.T) {
	t.Setenv("DIFFICULTY", "6")
	t.Setenv("MAX_NONCE", "1000")

	var stdout, stderr bytes.Buffer
	err := RunMiner(context.Background(), Options{BlockData: "test", Stdout: &stdout, Stderr: &stderr})
	require.Error(t, err)
	assert.True(t, usecases.IsExhaustedError(err))
}

func TestResolveWorkers(t *testing.T) {
	assert.Equal(t, 3, resolveWorkers(3))
	assert.Equal(t, 1, resolveWorkers(1))
	assert.GreaterOrEqual(t, resolveWorkers(0), 1)
}
