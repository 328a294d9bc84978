package service

import (
	"context"

	"github.com/MKhiriev/go-fin-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and verifies signed tokens. Access tokens are
// stateless; a user has at most one persisted refresh token.
type TokenService interface {
	IssueAccessToken(ctx context.Context, userID int64) (models.Token, error)
	// IssueRefreshToken signs a refresh token and stores it in place of the
	// user's previous one. The token is returned only once it is stored.
	IssueRefreshToken(ctx context.Context, userID int64) (models.Token, error)
	// Decode verifies signature, issuer, expiry and kind. Any failure is
	// reported as [ErrInvalidToken].
	Decode(ctx context.Context, tokenString string, kind models.TokenKind) (models.Token, error)
	// RevokeRefreshToken deletes the user's refresh token, if any.
	RevokeRefreshToken(ctx context.Context, userID int64) error
	// SweepExpiredRefreshTokens deletes refresh tokens past their expiry.
	SweepExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// AuthService covers registration, login, logout and the per-request
// authentication gateway.
type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	// Authenticate resolves an access token to its user. It is evaluated
	// on every call and never cached.
	Authenticate(ctx context.Context, accessToken string) (models.User, error)
}

// TransactionService manages the caller's transactions. Every operation is
// scoped to the owner.
type TransactionService interface {
	CreateTransaction(ctx context.Context, transaction models.NewTransaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error)
	ListTransactions(ctx context.Context, query models.TransactionQuery) (models.TransactionPage, error)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}

// HealthService reports the availability of the backing stores.
type HealthService interface {
	Check(ctx context.Context) models.HealthResponse
}

// TransactionPageCache keeps list results between requests. GetPage returns
// the entry key even on a miss; SetPage must be given that key.
type TransactionPageCache interface {
	GetPage(ctx context.Context, query models.TransactionQuery) (page models.TransactionPage, key string, found bool, err error)
	SetPage(ctx context.Context, key string, page models.TransactionPage) error
	Invalidate(ctx context.Context, userID int64) error
}
