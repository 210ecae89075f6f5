package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Heritage"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Mirror is the remote Postgres store that ledger mutations are copied
	// to. Leaving the host empty runs the app in-memory only.
	Mirror struct {
		Host     string `envconfig:"MIRROR_DB_HOST"`
		Port     int    `envconfig:"MIRROR_DB_PORT" default:"5432"`
		User     string `envconfig:"MIRROR_DB_USER" default:"postgres"`
		Password string `envconfig:"MIRROR_DB_PASSWORD" default:""`
		Name     string `envconfig:"MIRROR_DB_NAME" default:"heritage"`
	}

	// Redis backs the durable whole-collection snapshots. Empty address
	// disables snapshotting; the app then starts from sample data.
	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD" default:""`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	// AMQP carries audit-log events. Empty URL disables audit publishing.
	AMQP struct {
		URL string `envconfig:"AMQP_URL"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_SECRET"`
	}
}

func (c *Config) MirrorEnabled() bool {
	return c.Mirror.Host != ""
}

func (c *Config) MirrorDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Mirror.User, c.Mirror.Password, c.Mirror.Host, c.Mirror.Port, c.Mirror.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
