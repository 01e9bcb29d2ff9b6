package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sheshine/backoffice/pkg/cache"
	"github.com/sheshine/backoffice/pkg/database"
)

const (
	stateConnected    = "connected"
	stateDisconnected = "disconnected"
	stateDisabled     = "disabled"
)

// Health reports backing service state. Status follows the database.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

type HealthService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db, timeout: 2 * time.Second}
}

func (s *HealthService) Check(ctx context.Context) Health {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	h := Health{Status: stateConnected, Database: stateConnected, Cache: stateConnected}

	if err := database.Ping(ctx, s.db); err != nil {
		h.Status, h.Database = stateDisconnected, stateDisconnected
	}

	switch err := cache.Ping(ctx); {
	case errors.Is(err, cache.ErrNotConnected):
		h.Cache = stateDisabled
	case err != nil:
		h.Cache = stateDisconnected
	}
	return h
}
