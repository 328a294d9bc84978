// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/service"
)

// tokenSweeper periodically deletes refresh tokens that are past expiry.
type tokenSweeper struct {
	tokens   service.TokenService
	interval time.Duration
	logger   *logger.Logger
}

func newTokenSweeper(tokens service.TokenService, interval time.Duration, logger *logger.Logger) *tokenSweeper {
	return &tokenSweeper{tokens: tokens, interval: interval, logger: logger}
}

func (s *tokenSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("token sweeper started")
	runEvery(ctx, s.interval, s.sweep)
	s.logger.Info().Msg("token sweeper stopped")
}

func (s *tokenSweeper) sweep(ctx context.Context) {
	deleted, err := s.tokens.SweepExpiredRefreshTokens(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "tokenSweeper.sweep").Msg("error sweeping expired refresh tokens")
		return
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("expired refresh tokens swept")
	}
}
