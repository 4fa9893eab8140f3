package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type MinerConfig struct {
	App   `yaml:"app" toml:"app"`
	Miner `yaml:"miner" toml:"miner"`
	Log   `yaml:"log" toml:"log"`
}

// LoadMinerConfig reads the YAML or TOML file at path when one is given and
// then applies environment overrides.
func LoadMinerConfig(path string) (*MinerConfig, error) {
	cfg := &MinerConfig{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
