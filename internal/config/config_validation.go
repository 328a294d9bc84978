// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Defaults applied to zero-valued fields after all sources are merged.
const (
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 30 * 24 * time.Hour
	DefaultTokenIssuer          = "fin-tracker"
	DefaultConnTimeout          = 5 * time.Second
	DefaultRequestTimeout       = 30 * time.Second
	DefaultCacheTTL             = time.Minute
	DefaultTokenSweepInterval   = time.Hour
	DefaultHealthProbeInterval  = 15 * time.Second
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = DefaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = DefaultRefreshTokenDuration
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverPostgres
	}
	if cfg.Storage.DB.ConnTimeout == 0 {
		cfg.Storage.DB.ConnTimeout = DefaultConnTimeout
	}
	if cfg.Storage.Cache.TTL == 0 {
		cfg.Storage.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.TokenSweepInterval == 0 {
		cfg.Workers.TokenSweepInterval = DefaultTokenSweepInterval
	}
	if cfg.Workers.HealthProbeInterval == 0 {
		cfg.Workers.HealthProbeInterval = DefaultHealthProbeInterval
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// requirements before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.App.TokenSignKey == "" && !cfg.App.UsesRSA() {
		return fmt.Errorf("%w: either a token sign key or an RSA key pair is required", ErrInvalidAppConfigs)
	}

	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}

	if cfg.App.AccessTokenDuration < 0 || cfg.App.RefreshTokenDuration < 0 {
		return fmt.Errorf("%w: negative token duration", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.TokenFile == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
