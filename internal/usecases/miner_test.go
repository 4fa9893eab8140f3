package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powminer/pkg/pow/hashcash"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.record(msg) }
func (l *recordingLogger) Debug(msg string, _ ...interface{}) { l.record(msg) }

func TestMineBlock(t *testing.T) {
	logger := &recordingLogger{}
	u, err := NewMinerUsecase(&Config{Difficulty: 1, Workers: 1}, logger)
	require.NoError(t, err)

	block, err := u.MineBlock(context.Background(), "test")
	require.NoError(t, err)

	assert.Equal(t, "test", block.Data)
	assert.Equal(t, uint64(25), block.Nonce)
	assert.Equal(t, "0342840f6340d15691f4be1c0e0157fb0983992c4f436c18267d41dbe6bb74a2", block.Digest)
	assert.Equal(t, 1, block.Difficulty)
	assert.True(t, u.ValidateBlock(block.Data, block.Nonce))
	assert.False(t, u.ValidateBlock(block.Data, 24))
	assert.Contains(t, logger.messages, "block mined")
}

func TestMineBlockParallel(t *testing.T) {
	u, err := NewMinerUsecase(&Config{Difficulty: 4, Workers: 4}, &recordingLogger{})
	require.NoError(t, err)

	block, err := u.MineBlock(context.Background(), "Ejemplo de datos del bloque")
	require.NoError(t, err)
	assert.Equal(t, uint64(17609), block.Nonce)
	assert.Equal(t, "00008f7bbed8d0a5c39393e893473507bf95b030e1fcd1c50b7a015518fef500", block.Digest)
}

func TestNewMinerUsecaseRejectsDifficulty(t *testing.T) {
	for _, d := range []int{-1, hashcash.MaxDifficulty + 1} {
		_, err := NewMinerUsecase(&Config{Difficulty: d}, &recordingLogger{})
		require.Error(t, err)
		assert.True(t, IsConfigurationError(err), "difficulty %d: %v", d, err)
		assert.ErrorIs(t, err, ErrMinerInit)

		var minerErr *MinerError
		require.True(t, errors.As(err, &minerErr))
		assert.Equal(t, "NewMinerUsecase", minerErr.Op)
	}
}

func TestMineBlockExhausted(t *testing.T) {
	logger := &recordingLogger{}
	u, err := NewMinerUsecase(&Config{Difficulty: 6, MaxNonce: 1000}, logger)
	require.NoError(t, err)

	_, err = u.MineBlock(context.Background(), "test")
	require.Error(t, err)
	assert.True(t, IsExhaustedError(err))
	assert.ErrorIs(t, err, ErrMineFailed)
	assert.Contains(t, logger.messages, "mining failed")
}

func TestMineBlockTimeout(t *testing.T) {
	u, err := NewMinerUsecase(&Config{Difficulty: hashcash.MaxDifficulty, Timeout: 20 * time.Millisecond}, &recordingLogger{})
	require.NoError(t, err)

	_, err = u.MineBlock(context.Background(), "test")
	require.Error(t, err)
	assert.True(t, IsTimeoutError(err), "got %v", err)
}

func TestMinerErrorFormat(t *testing.T) {
	err := NewMinerError("MineBlock", ErrMineFailed, "difficulty 3")
	assert.Equal(t, "MineBlock: mining failed (difficulty 3)", err.Error())

	err = NewMinerError("MineBlock", ErrMineFailed, "")
	assert.Equal(t, "MineBlock: mining failed", err.Error())
}
