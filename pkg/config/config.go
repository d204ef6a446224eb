package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	FirebaseProject string `envconfig:"FIREBASE_PROJECT_ID"`
	FirebaseApiKey  string `envconfig:"FIREBASE_API_KEY"`
	StorageBucket   string `envconfig:"STORAGE_BUCKET"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	EdgeFunctionBaseURL string        `envconfig:"EDGE_FUNCTION_BASE_URL"`
	EdgeFunctionTimeout time.Duration `envconfig:"EDGE_FUNCTION_TIMEOUT" default:"30s"`

	// Soft-deleted items older than this are purged together with their photos.
	ItemRetention time.Duration `envconfig:"ITEM_RETENTION" default:"720h"`

	// How long an "actively viewing conversation X" announcement stays valid
	// without being refreshed.
	PresenceTTL time.Duration `envconfig:"PRESENCE_TTL" default:"45s"`
}

func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
