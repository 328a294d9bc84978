package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/service"
	"github.com/MKhiriev/go-fin-tracker/internal/utils"
	"github.com/MKhiriev/go-fin-tracker/models"
)

const (
	detailInternal    = "internal server error"
	detailUnavailable = "service temporarily unavailable"
)

// errorStatusMap maps service error kinds onto status codes. Specific errors
// wrap exactly one kind, so the map stays closed.
var errorStatusMap = map[error]int{
	service.ErrInvalidArgument:    http.StatusBadRequest,
	service.ErrUnauthorized:       http.StatusUnauthorized,
	service.ErrNotFound:           http.StatusNotFound,
	service.ErrConflict:           http.StatusConflict,
	service.ErrServiceUnavailable: http.StatusServiceUnavailable,
}

func statusFromError(err error) (int, error) {
	for kind, status := range errorStatusMap {
		if errors.Is(err, kind) {
			return status, kind
		}
	}
	return http.StatusInternalServerError, nil
}

// errorDetail is the caller-facing message of err. Storage failures and
// unclassified errors get a generic text; the cause only goes to the log.
func errorDetail(err, kind error) string {
	switch kind {
	case nil:
		return detailInternal
	case service.ErrServiceUnavailable:
		return detailUnavailable
	}
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}

// writeError logs err and writes the {"detail": ...} body with the mapped status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	utils.WriteJSON(w, models.ErrorResponse{Detail: errorDetail(err, kind)}, status)
}
