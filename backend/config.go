package main

import (
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string `env:"ADDR" envDefault:":8080" json:"addr"`
	DatabasePath    string `env:"DB_PATH" envDefault:"data/widgets.db" json:"db_path"`
	OpponentDelayMs int    `env:"OPPONENT_DELAY_MS" envDefault:"400" json:"opponent_delay_ms"`
}

func (c Config) OpponentDelay() time.Duration {
	return time.Duration(c.OpponentDelayMs) * time.Millisecond
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

var configStore ConfigStore

// LoadConfig reads the process configuration from the environment, with an
// optional .env file for local runs.
func LoadConfig() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("[config] no .env file loaded")
	}
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("[config] failed to parse config: %v", err)
	}
	return cfg
}

func (s *ConfigStore) Update(config Config) {
	s.mu.Lock()
	s.config = config
	s.mu.Unlock()
}

func GetConfig() Config {
	configStore.mu.RLock()
	defer configStore.mu.RUnlock()
	return configStore.config
}
