package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingerFunc(func(context.Context) error { return nil })
	down = pingerFunc(func(context.Context) error { return errors.New("down") })
)

func TestHealthService_Check(t *testing.T) {
	tests := []struct {
		name     string
		database Pinger
		cache    Pinger
		want     models.HealthResponse
	}{
		{name: "no cache", database: up, want: models.HealthResponse{Status: "ok", Database: "ok"}},
		{name: "all up", database: up, cache: up, want: models.HealthResponse{Status: "ok", Database: "ok", Cache: "ok"}},
		{name: "cache down", database: up, cache: down, want: models.HealthResponse{Status: "degraded", Database: "ok", Cache: "unavailable"}},
		{name: "database down", database: down, cache: up, want: models.HealthResponse{Status: "unavailable", Database: "unavailable", Cache: "ok"}},
		{name: "everything down", database: down, cache: down, want: models.HealthResponse{Status: "unavailable", Database: "unavailable", Cache: "unavailable"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewHealthService(tt.database, tt.cache, logger.Nop())
			assert.Equal(t, tt.want, svc.Check(context.Background()))
		})
	}
}
