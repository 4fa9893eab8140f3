package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"

	"powminer/config"
	"powminer/internal/logging"
	"powminer/internal/progress"
	"powminer/internal/usecases"
)

const (
	ErrPowInit  = "failed to initialize pow"
	ErrRunMiner = "failed miner run"
)

type Options struct {
	ConfigPath string
	BlockData  string // overrides the configured block data when set
	Stdout     io.Writer
	Stderr     io.Writer
}

// RunMiner mines the configured block once, re-validates it and prints the result.
func RunMiner(ctx context.Context, opts Options) error {
	cfg, err := config.LoadMinerConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	logger := logging.New(opts.Stderr, logging.Config{Level: cfg.Level, Format: cfg.Format})
	logger = logger.With("Service", cfg.App.Name)

	blockData := cfg.BlockData
	if opts.BlockData != "" {
		blockData = opts.BlockData
	}

	ucCfg := &usecases.Config{
		Difficulty: cfg.Difficulty,
		Workers:    resolveWorkers(cfg.Workers),
		MaxNonce:   cfg.MaxNonce,
		Timeout:    cfg.Timeout,
	}

	var bar *progress.Reporter
	if cfg.Progress {
		bar = progress.New(opts.Stderr, cfg.Difficulty)
		ucCfg.Progress = bar.Add
	}

	minerUsecase, err := usecases.NewMinerUsecase(ucCfg, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPowInit, err)
	}
	logger.Info("miner ready", "difficulty", minerUsecase.Difficulty(), "workers", ucCfg.Workers)

	block, err := minerUsecase.MineBlock(ctx, blockData)
	if bar != nil {
		bar.Done()
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrRunMiner, err)
	}

	fmt.Fprintf(opts.Stdout, "Block mined! Nonce: %d, Hash: %s, Time: %s\n", block.Nonce, block.Digest, block.Elapsed)

	valid := "no"
	if minerUsecase.ValidateBlock(blockData, block.Nonce) {
		valid = "yes"
	}
	fmt.Fprintf(opts.Stdout, "Block valid: %s\n", valid)

	return nil
}

// resolveWorkers maps 0 to the logical CPU count.
func resolveWorkers(n int) int {
	if n != 0 {
		return n
	}
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		return runtime.NumCPU()
	}
	return count
}
