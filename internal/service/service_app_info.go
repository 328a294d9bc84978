package service

import (
	"context"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

type appInfoService struct {
	version models.VersionResponse

	logger *logger.Logger
}

// NewAppInfoService reports the build metadata of the binary. A version set
// in the configuration takes precedence over the linker-provided one.
func NewAppInfoService(buildInfo models.AppBuildInfo, cfg config.App, logger *logger.Logger) AppInfoService {
	version := buildInfo.Response()
	if cfg.Version != "" {
		version.Version = cfg.Version
	}

	return &appInfoService{
		version: version,
		logger:  logger,
	}
}

func (s *appInfoService) GetAppVersion(ctx context.Context) models.VersionResponse {
	return s.version
}
