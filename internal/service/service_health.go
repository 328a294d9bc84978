package service

import (
	"context"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

const (
	StatusOK          = "ok"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"
	StatusDisabled    = ""
)

// Pinger is anything that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	database Pinger
	cache    Pinger

	logger *logger.Logger
}

// NewHealthService checks database and, when not nil, cache.
func NewHealthService(database, cache Pinger, logger *logger.Logger) HealthService {
	return &healthService{
		database: database,
		cache:    cache,
		logger:   logger,
	}
}

// Check pings every dependency. The overall status is "unavailable" when the
// database is down and "degraded" when only the cache is.
func (s *healthService) Check(ctx context.Context) models.HealthResponse {
	log := logger.FromContext(ctx).With().Str("func", "*healthService.Check").Logger()

	response := models.HealthResponse{Status: StatusOK, Database: StatusOK}

	if err := s.database.Ping(ctx); err != nil {
		log.Err(err).Msg("database is unavailable")
		response.Status = StatusUnavailable
		response.Database = StatusUnavailable
	}

	if s.cache != nil {
		response.Cache = StatusOK
		if err := s.cache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("cache is unavailable")
			response.Cache = StatusUnavailable
			if response.Status == StatusOK {
				response.Status = StatusDegraded
			}
		}
	}

	return response
}
