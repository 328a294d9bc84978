package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with server-assigned fields.
	// Returns [ErrEmailAlreadyExists] when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns [ErrUserNotFound] when no user has email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns [ErrUserNotFound] when no user has userID.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// RefreshTokenRepository persists at most one refresh token per user.
type RefreshTokenRepository interface {
	// ReplaceRefreshToken atomically removes any token of token.UserID and
	// stores token. Returns [ErrUserNotFound] when the user does not exist.
	ReplaceRefreshToken(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)
	// FindRefreshToken returns [ErrRefreshTokenNotFound] when the user has none.
	FindRefreshToken(ctx context.Context, userID int64) (models.RefreshToken, error)
	// DeleteRefreshToken removes the user's token. Deleting a missing token
	// is not an error; the returned flag reports whether a row was removed.
	DeleteRefreshToken(ctx context.Context, userID int64) (bool, error)
	// DeleteExpiredRefreshTokens removes tokens that expired before now.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// TransactionRepository owns the transactions relation. Every read and delete
// is scoped to the owner.
type TransactionRepository interface {
	// CreateTransaction stores a normalized transaction. Returns
	// [ErrUserNotFound] when the owner does not exist.
	CreateTransaction(ctx context.Context, transaction models.NewTransaction) (models.Transaction, error)
	// GetTransaction returns [ErrTransactionNotFound] when the row does not
	// exist or belongs to another user.
	GetTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error)
	// DeleteTransaction removes and returns the row. Returns
	// [ErrTransactionNotFound] under the same rules as GetTransaction.
	DeleteTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error)
	// ListTransactions returns one page of rows matching query together with
	// the total number of matching rows, both read from one snapshot.
	ListTransactions(ctx context.Context, query models.TransactionQuery) (models.TransactionList, error)
}

// ErrorClassificator maps a driver error onto an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
