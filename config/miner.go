package config

import "time"

type Miner struct {
	Difficulty int           `yaml:"difficulty" toml:"difficulty" env:"DIFFICULTY" env-default:"4"`
	Workers    int           `yaml:"workers" toml:"workers" env:"WORKERS" env-default:"1"` // 0 = one per logical CPU
	MaxNonce   uint64        `yaml:"max_nonce" toml:"max_nonce" env:"MAX_NONCE" env-default:"0"`
	Timeout    time.Duration `yaml:"timeout" toml:"timeout" env:"TIMEOUT" env-default:"0s"`
	Progress   bool          `yaml:"progress" toml:"progress" env:"PROGRESS" env-default:"false"`
}
