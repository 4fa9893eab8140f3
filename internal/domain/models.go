package domain

import "time"

// MinedBlock defines a block whose nonce satisfies the miner's difficulty.
type MinedBlock struct {
	Data       string
	Nonce      uint64
	Digest     string
	Difficulty int
	Elapsed    time.Duration
}
