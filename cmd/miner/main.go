package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"powminer/internal/app"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML or TOML config file (optional)")
	blockData := flag.String("data", "", "block data to mine, overrides BLOCK_DATA")
	flag.Parse()

	// A missing .env is fine, the environment alone is enough.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	if err := app.RunMiner(ctx, app.Options{ConfigPath: *configPath, BlockData: *blockData}); err != nil {
		log.Fatalf("failed to run miner: %v", err)
	}
}
