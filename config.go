package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultRabbitPort = 5672
	blobContainer     = "cisab-consolidados"
	notifyQueue       = "notifier"
)

// config carries every runtime option for one consolidation run. The job has
// no CLI flags; everything comes from the environment.
type config struct {
	mongoURI     string
	azureConnStr string
	blobBaseURL  string

	rabbitHost     string
	rabbitPort     int
	rabbitUser     string
	rabbitPassword string
	notifyTo       string
}

// loadConfig reads the environment into a validated config. A missing
// required variable aborts the run before any query is made.
func loadConfig() (config, error) {
	// Optional .env in the working directory, same as the original deployment.
	_ = godotenv.Load()

	var cfg config
	var err error
	if cfg.mongoURI, err = requiredEnv("MONGO_CONN_STR"); err != nil {
		return config{}, err
	}
	if cfg.azureConnStr, err = requiredEnv("AZURE_CONN_STR"); err != nil {
		return config{}, err
	}
	if cfg.blobBaseURL, err = requiredEnv("AZURE_BLOB_STORAGE"); err != nil {
		return config{}, err
	}
	if cfg.rabbitHost, err = requiredEnv("RABBITMQ_CONN_STR"); err != nil {
		return config{}, err
	}
	if cfg.notifyTo, err = requiredEnv("RABBITMQ_TO"); err != nil {
		return config{}, err
	}
	if cfg.rabbitPort, err = intEnv("RABBITMQ_PORT", defaultRabbitPort); err != nil {
		return config{}, err
	}
	cfg.rabbitUser = strings.TrimSpace(os.Getenv("RABBITMQ_USER"))
	cfg.rabbitPassword = os.Getenv("RABBITMQ_PASSWORD")
	return cfg, nil
}

func requiredEnv(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", fmt.Errorf("missing required environment variable %s", key)
	}
	return value, nil
}

func intEnv(key string, def int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
