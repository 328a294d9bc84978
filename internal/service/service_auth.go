package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/store"
	"github.com/MKhiriev/go-fin-tracker/internal/utils"
	"github.com/MKhiriev/go-fin-tracker/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt digests; tokens come from tokenService.
type authService struct {
	userRepository store.UserRepository
	tokenService   TokenService

	// bcryptCost is the work factor used for new digests.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. The returned service is safe for
// concurrent use.
func NewAuthService(userRepository store.UserRepository, tokenService TokenService, cfg config.App, logger *logger.Logger) AuthService {
	logger.Debug().Msg("creating auth service")
	return &authService{
		userRepository: userRepository,
		tokenService:   tokenService,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// RegisterUser stores a new account. The email is normalized so that
// uniqueness is case-insensitive, and the password is hashed here; callers
// always pass the raw password.
//
// Returns [ErrEmailAlreadyRegistered] when the email is taken.
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.RegisterUser").Logger()

	digest, err := utils.HashPassword(request.Password, a.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, ErrPasswordTooLong
	}
	if errors.Is(err, utils.ErrEmptyPassword) {
		return models.User{}, invalid(err)
	}
	if err != nil {
		log.Err(err).Msg("failed to hash password")
		return models.User{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     strings.TrimSpace(request.Username),
		Email:        models.NormalizeEmail(request.Email),
		PasswordHash: digest,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, ErrEmailAlreadyRegistered
	}
	if err != nil {
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, unavailable(err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	return user, nil
}

// Login checks the credentials and issues a token pair. The refresh token
// replaces any previous one. Unknown emails and wrong passwords are reported
// identically as [ErrInvalidCredentials] and leave stored tokens untouched.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx).With().Str("func", "*authService.Login").Logger()

	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(request.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		return models.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.TokenPair{}, unavailable(err)
	}

	if !utils.VerifyPassword(request.Password, user.PasswordHash) {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	accessToken, err := a.tokenService.IssueAccessToken(ctx, user.UserID)
	if err != nil {
		return models.TokenPair{}, err
	}

	refreshToken, err := a.tokenService.IssueRefreshToken(ctx, user.UserID)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{
		AccessToken:  accessToken.String(),
		RefreshToken: refreshToken.String(),
		TokenType:    models.TokenTypeBearer,
	}, nil
}

// Logout revokes the caller's refresh token. Repeated calls succeed.
func (a *authService) Logout(ctx context.Context, userID int64) error {
	return a.tokenService.RevokeRefreshToken(ctx, userID)
}

// Authenticate decodes accessToken and loads its subject. Storage failures
// yield [ErrServiceUnavailable]; everything else yields [ErrInvalidToken].
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	token, err := a.tokenService.Decode(ctx, accessToken, models.TokenKindAccess)
	if err != nil {
		return models.User{}, ErrInvalidToken
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidToken
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*authService.Authenticate").
			Int64("user_id", token.UserID).
			Msg("user lookup failed")
		return models.User{}, unavailable(err)
	}

	return user, nil
}
