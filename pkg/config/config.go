// Package config loads the service's environment-driven settings,
// failing closed on missing or insecure values the way a production
// deployment must.
package config

import (
	"errors"
	"os"
	"strconv"

	"mazemaster/pkg/constants"
)

type Config struct {
	SessionSecret     string
	Port              string
	StorePath         string // empty selects the in-memory store
	DispatcherWorkers int
	DispatcherQueue   int
	// Inline mirrors the original's DETA_RUNTIME single-threaded
	// fallback: when true, solves run on the calling goroutine instead
	// of a worker pool.
	Inline bool
}

// Load loads configuration from environment variables. It returns an
// error if SESSION_SECRET is not set or looks like a placeholder.
func Load() (*Config, error) {
	secret := os.Getenv("SESSION_SECRET")

	if secret == "" {
		return nil, errors.New("SECURITY ERROR: SESSION_SECRET environment variable is required but not set")
	}
	if secret == "changeme" {
		return nil, errors.New("SECURITY ERROR: SESSION_SECRET cannot be 'changeme' - please set a secure secret")
	}
	if len(secret) < 32 {
		return nil, errors.New("SECURITY ERROR: SESSION_SECRET must be at least 32 characters long")
	}

	workers, err := getEnvInt("DISPATCHER_WORKERS", constants.DefaultDispatcherWorkers)
	if err != nil {
		return nil, err
	}
	queue, err := getEnvInt("DISPATCHER_QUEUE", constants.DefaultDispatcherQueue)
	if err != nil {
		return nil, err
	}

	return &Config{
		SessionSecret:     secret,
		Port:              getEnv("PORT", constants.DefaultPort),
		StorePath:         os.Getenv("STORE_PATH"),
		DispatcherWorkers: workers,
		DispatcherQueue:   queue,
		Inline:            getEnv("DETA_RUNTIME_COMPAT", "false") == "true",
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.New("CONFIG ERROR: " + key + " must be an integer")
	}
	return n, nil
}
