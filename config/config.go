package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	PostgresURL    string `env:"POSTGRES_URL,required"`
	RedisAddr      string `env:"REDIS_ADDR,required"`
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8080"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT"`

	// rebuilds the ops read model from the data lake before serving
	RebuildOpsReadModel bool `env:"REBUILD_OPS_READ_MODEL"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config from env: %w", err)
	}

	return cfg, nil
}
