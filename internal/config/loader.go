package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the registry
// service.
type Config struct {
	HTTPPort         int
	SQLiteDSN        string
	BcryptCost       int
	OperationTimeout time.Duration
}

// Load parses configuration values from the current process environment. A
// .env file in the working directory is read first when present; real
// environment variables win over it.
//
// The loader applies defaults for every field and accumulates all invalid
// values into one error instead of stopping at the first.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:         8080,
		SQLiteDSN:        "registry.db",
		BcryptCost:       12,
		OperationTimeout: 10 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("REGISTRY_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "REGISTRY_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("REGISTRY_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if costValue := strings.TrimSpace(os.Getenv("REGISTRY_BCRYPT_COST")); costValue != "" {
		cost, err := strconv.Atoi(costValue)
		if err != nil || cost < 4 || cost > 31 {
			invalid = append(invalid, "REGISTRY_BCRYPT_COST")
		} else {
			cfg.BcryptCost = cost
		}
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("REGISTRY_OP_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "REGISTRY_OP_TIMEOUT")
		} else {
			cfg.OperationTimeout = timeout
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
