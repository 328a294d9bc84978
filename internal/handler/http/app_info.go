package http

import (
	"net/http"

	"github.com/MKhiriev/go-fin-tracker/internal/service"
	"github.com/MKhiriev/go-fin-tracker/internal/utils"
)

// health reports 503 only when the database is down; a failed cache
// degrades the service but keeps it usable.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	report := h.services.HealthService.Check(r.Context())

	status := http.StatusOK
	if report.Status == service.StatusUnavailable {
		status = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, report, status)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppVersion(r.Context()), http.StatusOK)
}
