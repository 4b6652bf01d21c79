package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/marketdex/economy/internal/services/economy"
	"github.com/marketdex/economy/internal/services/shop"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	PostgresDSN     string        `env:"PG_DSN"`
	AdminIDs        string        `env:"ADMIN_IDS" envDefault:""`
	Shop            shop.Config
	Economy         economy.Config
}

// adminIDs parses the comma-separated admin allowlist.
func (c *apiConfig) adminIDs() ([]uint64, error) {
	if strings.TrimSpace(c.AdminIDs) == "" {
		return nil, nil
	}

	parts := strings.Split(c.AdminIDs, ",")
	ids := make([]uint64, 0, len(parts))

	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse admin id %q: %w", p, err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}
