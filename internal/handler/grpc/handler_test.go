package grpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/mock"
	"github.com/MKhiriev/go-fin-tracker/internal/service"
	"github.com/MKhiriev/go-fin-tracker/models"
)

func newTestHandler(t *testing.T) (*Handler, *mock.MockHealthService) {
	t.Helper()
	healthService := mock.NewMockHealthService(gomock.NewController(t))
	return NewHandler(&service.Services{HealthService: healthService}, logger.Nop()), healthService
}

func servingStatus(t *testing.T, h *Handler, name string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: name})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestProbeHealth(t *testing.T) {
	tests := []struct {
		name        string
		report      models.HealthResponse
		wantServing bool
		wantStatus  healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "ok", report: models.HealthResponse{Status: service.StatusOK}, wantServing: true, wantStatus: healthpb.HealthCheckResponse_SERVING},
		{name: "degraded", report: models.HealthResponse{Status: service.StatusDegraded}, wantServing: true, wantStatus: healthpb.HealthCheckResponse_SERVING},
		{name: "unavailable", report: models.HealthResponse{Status: service.StatusUnavailable}, wantServing: false, wantStatus: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, healthService := newTestHandler(t)
			healthService.EXPECT().Check(gomock.Any()).Return(tt.report)

			assert.Equal(t, tt.wantServing, h.ProbeHealth(context.Background()))
			assert.Equal(t, tt.wantStatus, servingStatus(t, h, ""))
			assert.Equal(t, tt.wantStatus, servingStatus(t, h, ServiceName))
		})
	}
}

func TestShutdown_StopsServing(t *testing.T) {
	h, healthService := newTestHandler(t)
	healthService.EXPECT().Check(gomock.Any()).Return(models.HealthResponse{Status: service.StatusOK})
	h.ProbeHealth(context.Background())

	h.Shutdown()

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, servingStatus(t, h, ServiceName))
}

func TestRegister(t *testing.T) {
	h, _ := newTestHandler(t)
	server := grpc.NewServer(h.ServerOptions()...)
	defer server.Stop()

	h.Register(server)

	assert.Contains(t, server.GetServiceInfo(), "grpc.health.v1.Health")
}

func TestInterceptors_PropagateTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(traceIDKey, "trace-42"))
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	inner := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Unavailable, "down")
	}
	logged := func(ctx context.Context, req any) (any, error) {
		return h.withLogging(ctx, req, info, inner)
	}

	_, err := h.withTraceID(ctx, nil, info, logged)
	assert.Equal(t, codes.Unavailable, status.Code(err))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "trace-42", line["trace_id"])
	assert.Equal(t, "/grpc.health.v1.Health/Check", line["method"])
	assert.Equal(t, "Unavailable", line["code"])
}

func TestWithTraceID_GeneratesWhenMissing(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	var called bool
	_, err := h.withTraceID(context.Background(), nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		called = true
		return nil, errors.New("inner")
	})

	assert.True(t, called)
	assert.EqualError(t, err, "inner")
}
