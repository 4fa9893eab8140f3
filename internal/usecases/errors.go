package usecases

import (
	"context"
	"errors"
	"fmt"

	"powminer/pkg/pow/hashcash"
)

var (
	ErrMinerInit  = errors.New("failed to initialize miner")
	ErrMineFailed = errors.New("mining failed")
)

// MinerError carries the failing operation and some context.
type MinerError struct {
	Op   string // Operation that failed
	Err  error  // Original error
	Info string // Additional context
}

func (e *MinerError) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Info)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *MinerError) Unwrap() error {
	return e.Err
}

func NewMinerError(op string, err error, info string) error {
	return &MinerError{
		Op:   op,
		Err:  err,
		Info: info,
	}
}

// IsConfigurationError reports a difficulty or worker setting the miner refused.
func IsConfigurationError(err error) bool {
	return errors.Is(err, hashcash.ErrDifficultyRange) || errors.Is(err, hashcash.ErrInvalidWorkers)
}

func IsExhaustedError(err error) bool {
	return errors.Is(err, hashcash.ErrSearchExhausted)
}

func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
