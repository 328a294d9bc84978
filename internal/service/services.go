package service

import (
	"fmt"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/store"
	"github.com/MKhiriev/go-fin-tracker/models"
)

type Services struct {
	TokenService       TokenService
	AuthService        AuthService
	TransactionService TransactionService
	AppInfoService     AppInfoService
	HealthService      HealthService
}

// Dependencies are the infrastructure handles services are built on.
// PageCache is optional; without it list results are not cached.
type Dependencies struct {
	Repositories *store.Repositories
	Database     Pinger
	PageCache    interface {
		TransactionPageCache
		Pinger
	}
	BuildInfo models.AppBuildInfo
}

// NewServices wires every service and its wrappers. Validation is always the
// outermost layer so that invalid input never reaches the cache or the store.
func NewServices(deps Dependencies, cfg config.App, logger *logger.Logger) (*Services, error) {
	signer, err := NewSigner(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating token signer: %w", err)
	}

	tokenService := NewTokenService(deps.Repositories.RefreshTokenRepository, signer, cfg, logger)

	authService := NewAuthService(deps.Repositories.UserRepository, tokenService, cfg, logger)
	authService = NewAuthValidationService().Wrap(authService)

	transactionService := NewTransactionService(deps.Repositories.TransactionRepository, logger)
	var cachePinger Pinger
	if deps.PageCache != nil {
		transactionService = NewTransactionCacheService(deps.PageCache).Wrap(transactionService)
		cachePinger = deps.PageCache
	}
	transactionService = NewTransactionValidationService().Wrap(transactionService)

	return &Services{
		TokenService:       tokenService,
		AuthService:        authService,
		TransactionService: transactionService,
		AppInfoService:     NewAppInfoService(deps.BuildInfo, cfg, logger),
		HealthService:      NewHealthService(deps.Database, cachePinger, logger),
	}, nil
}
