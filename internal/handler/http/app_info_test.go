package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-tracker/models"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		report     models.HealthResponse
		wantStatus int
	}{
		{name: "ok", report: models.HealthResponse{Status: "ok", Database: "ok"}, wantStatus: http.StatusOK},
		{name: "degraded", report: models.HealthResponse{Status: "degraded", Database: "ok", Cache: "unavailable"}, wantStatus: http.StatusOK},
		{name: "unavailable", report: models.HealthResponse{Status: "unavailable", Database: "unavailable"}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.health.EXPECT().Check(gomock.Any()).Return(tt.report)

			rec := serve(t, h, http.MethodGet, "/api/health", "", false)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.report, decodeBody[models.HealthResponse](t, rec))
		})
	}
}

func TestVersion(t *testing.T) {
	h, m := newTestHandler(t)
	want := models.VersionResponse{Version: "1.4.0", Date: "2026-03-14", Commit: "abc123"}
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(want)

	rec := serve(t, h, http.MethodGet, "/api/version", "", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, decodeBody[models.VersionResponse](t, rec))
}
