package config

type App struct {
	Name      string `yaml:"name" toml:"name" env:"NAME" env-default:"pow-miner"`
	BlockData string `yaml:"block_data" toml:"block_data" env:"BLOCK_DATA" env-default:"Ejemplo de datos del bloque"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" toml:"format" env:"LOG_FORMAT" env-default:"text"`
}
