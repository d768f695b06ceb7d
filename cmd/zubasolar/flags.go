package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Address             string        `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"INFO"`
	FulfillmentAddress  string        `env:"FULFILLMENT_ADDRESS" envDefault:"localhost:8090"`
	FulfillmentWorkers  int           `env:"FULFILLMENT_WORKER" envDefault:"10"`
	FulfillmentInterval time.Duration `env:"FULFILLMENT_INTERVAL" envDefault:"30s"`
	DatabaseConnection  string        `env:"DATABASE_URI"`
	JWTSecret           string        `env:"JWT_SECRET" envDefault:"dontexposethis"`
	JWTTTL              time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("ENV JWT_SECRET must be set")
	}

	address := flag.String("a", cfg.Address, "{Host:port} for server")
	loglevel := flag.String("l", cfg.LogLevel, "Log level for server")
	fulfillmentAddress := flag.String("r", cfg.FulfillmentAddress, "Fulfillment partner address")
	fulfillmentWorkers := flag.Int("w", cfg.FulfillmentWorkers, "Size of worker pool")
	fulfillmentInterval := flag.Duration("i", cfg.FulfillmentInterval, "Worker poll interval")
	databaseConnection := flag.String("d", cfg.DatabaseConnection, "Database connection string")
	jwtTTL := flag.Duration("t", cfg.JWTTTL, "TTL for JWT token(e.g. 24h; 30m )")

	flag.Parse()

	cfg.Address = *address
	cfg.LogLevel = *loglevel
	cfg.FulfillmentAddress = *fulfillmentAddress
	cfg.FulfillmentWorkers = *fulfillmentWorkers
	cfg.FulfillmentInterval = *fulfillmentInterval
	cfg.DatabaseConnection = *databaseConnection
	cfg.JWTTTL = *jwtTTL

	return cfg, nil
}
