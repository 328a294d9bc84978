// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/store"
	"github.com/MKhiriev/go-fin-tracker/internal/utils"
	"github.com/MKhiriev/go-fin-tracker/models"
)

// tokenService is the concrete implementation of TokenService.
type tokenService struct {
	refreshTokenRepository store.RefreshTokenRepository

	// signer holds the HS256 secret or the RS256 key pair.
	signer *utils.Signer

	// issuer is the "iss" claim of every issued token. Tokens of other
	// issuers are rejected.
	issuer string

	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewTokenService constructs a TokenService. The signer is built once at
// startup from cfg and treated as immutable afterwards.
func NewTokenService(refreshTokenRepository store.RefreshTokenRepository, signer *utils.Signer, cfg config.App, logger *logger.Logger) TokenService {
	logger.Debug().Str("alg", signer.Algorithm()).Msg("creating token service")
	return &tokenService{
		refreshTokenRepository: refreshTokenRepository,
		signer:                 signer,
		issuer:                 cfg.TokenIssuer,
		accessTokenDuration:    cfg.AccessTokenDuration,
		refreshTokenDuration:   cfg.RefreshTokenDuration,
		now:                    func() time.Time { return time.Now().UTC() },
		logger:                 logger,
	}
}

// NewSigner picks RS256 when a key pair is configured and HS256 otherwise.
func NewSigner(cfg config.App) (*utils.Signer, error) {
	if cfg.UsesRSA() {
		return utils.LoadRSASigner(cfg.PrivateKeyPath, cfg.PublicKeyPath)
	}
	return utils.NewHMACSigner(cfg.TokenSignKey)
}

func (s *tokenService) IssueAccessToken(ctx context.Context, userID int64) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.signer, s.issuer, userID, models.TokenKindAccess, s.accessTokenDuration, s.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.IssueAccessToken").Msg("failed to sign access token")
		return models.Token{}, fmt.Errorf("error signing access token: %w", err)
	}

	return token, nil
}

func (s *tokenService) IssueRefreshToken(ctx context.Context, userID int64) (models.Token, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*tokenService.IssueRefreshToken").
		Int64("user_id", userID).
		Logger()

	token, err := utils.GenerateJWTToken(s.signer, s.issuer, userID, models.TokenKindRefresh, s.refreshTokenDuration, s.now())
	if err != nil {
		log.Err(err).Msg("failed to sign refresh token")
		return models.Token{}, fmt.Errorf("error signing refresh token: %w", err)
	}

	_, err = s.refreshTokenRepository.ReplaceRefreshToken(ctx, models.RefreshToken{
		UserID:    userID,
		Token:     token.SignedString,
		ExpiresAt: token.ExpiresAt,
	})
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Token{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Msg("failed to store refresh token")
		return models.Token{}, unavailable(err)
	}

	return token, nil
}

func (s *tokenService) Decode(ctx context.Context, tokenString string, kind models.TokenKind) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.signer, s.issuer, kind)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*tokenService.Decode").Msg("token rejected")
		return models.Token{}, ErrInvalidToken
	}

	return token, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID int64) error {
	deleted, err := s.refreshTokenRepository.DeleteRefreshToken(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.RevokeRefreshToken").Int64("user_id", userID).Msg("failed to revoke refresh token")
		return unavailable(err)
	}

	logger.FromContext(ctx).Debug().Int64("user_id", userID).Bool("deleted", deleted).Msg("refresh token revoked")
	return nil
}

func (s *tokenService) SweepExpiredRefreshTokens(ctx context.Context) (int64, error) {
	removed, err := s.refreshTokenRepository.DeleteExpiredRefreshTokens(ctx, s.now())
	if err != nil {
		return 0, unavailable(err)
	}
	return removed, nil
}
