package usecases

import (
	"context"
	"fmt"
	"time"

	"powminer/internal/domain"
	"powminer/pkg/pow/hashcash"
)

// MinerUsecase defines the interface for mining and validating blocks.
type MinerUsecase interface {
	MineBlock(ctx context.Context, blockData string) (*domain.MinedBlock, error)
	ValidateBlock(blockData string, nonce uint64) bool
	Difficulty() int
}

type Logger interface {
	Error(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

type Config struct {
	Difficulty int
	Workers    int
	MaxNonce   uint64 // 0 means no ceiling
	Timeout    time.Duration
	Progress   hashcash.ProgressFunc
}

type minerUsecaseImpl struct {
	miner   *hashcash.Miner
	timeout time.Duration
	logger  Logger
}

// NewMinerUsecase initializes the miner with the configured difficulty and search limits.
func NewMinerUsecase(cfg *Config, logger Logger) (MinerUsecase, error) {
	opts := []hashcash.Option{hashcash.WithWorkers(cfg.Workers)}
	if cfg.MaxNonce > 0 {
		opts = append(opts, hashcash.WithMaxNonce(cfg.MaxNonce))
	}
	if cfg.Progress != nil {
		opts = append(opts, hashcash.WithProgress(cfg.Progress))
	}

	miner, err := hashcash.NewMiner(cfg.Difficulty, opts...)
	if err != nil {
		return nil, NewMinerError("NewMinerUsecase", fmt.Errorf("%w: %w", ErrMinerInit, err), "")
	}
	return &minerUsecaseImpl{
		miner:   miner,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// MineBlock searches for the smallest valid nonce, bounded by the configured timeout.
func (u *minerUsecaseImpl) MineBlock(ctx context.Context, blockData string) (*domain.MinedBlock, error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	u.logger.Debug("mining started", "difficulty", u.miner.Difficulty(), "data_length", len(blockData))

	start := time.Now()
	res, err := u.miner.Mine(ctx, blockData)
	elapsed := time.Since(start)
	if err != nil {
		u.logger.Error("mining failed", "difficulty", u.miner.Difficulty(), "elapsed", elapsed, "error", err)
		return nil, NewMinerError("MineBlock", fmt.Errorf("%w: %w", ErrMineFailed, err),
			fmt.Sprintf("difficulty %d", u.miner.Difficulty()))
	}

	u.logger.Info("block mined", "nonce", res.Nonce, "hash", res.Digest, "elapsed", elapsed)

	return &domain.MinedBlock{
		Data:       blockData,
		Nonce:      res.Nonce,
		Digest:     res.Digest,
		Difficulty: u.miner.Difficulty(),
		Elapsed:    elapsed,
	}, nil
}

// ValidateBlock checks if the nonce is a valid proof of work for the block data.
func (u *minerUsecaseImpl) ValidateBlock(blockData string, nonce uint64) bool {
	return u.miner.IsValid(blockData, nonce)
}

func (u *minerUsecaseImpl) Difficulty() int {
	return u.miner.Difficulty()
}
