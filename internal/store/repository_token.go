package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] on top of
// the "tokens" table.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// ReplaceRefreshToken deletes the user's current token and inserts the new
// one in a single transaction, then bumps users.updated_at. Concurrent
// replacements are last-writer-wins.
func (r *refreshTokenRepository) ReplaceRefreshToken(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*refreshTokenRepository.ReplaceRefreshToken").
		Int64("user_id", token.UserID).
		Logger()

	now := r.now()
	token.CreatedAt = now
	token.UpdatedAt = now
	token.ExpiresAt = token.ExpiresAt.UTC()

	deleteQuery, deleteArgs, err := r.db.deleteRefreshTokensQuery(sq.Eq{"user_id": token.UserID})
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	insertQuery, insertArgs, err := r.db.insertRefreshTokenQuery(token)
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	touchQuery, touchArgs, err := r.db.touchUserQuery(token.UserID, now)
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err = r.db.WithTx(ctx, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if err := tx.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&token.ID); err != nil {
			if r.db.classify(err) == ForeignKeyViolation {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if _, err := tx.ExecContext(ctx, touchQuery, touchArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Msg("failed to replace refresh token")
		}
		return models.RefreshToken{}, err
	}

	log.Debug().Time("expires_at", token.ExpiresAt).Msg("refresh token replaced")
	return token, nil
}

// FindRefreshToken returns the user's stored refresh token.
func (r *refreshTokenRepository) FindRefreshToken(ctx context.Context, userID int64) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.findRefreshTokenQuery(userID)
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var token models.RefreshToken
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&token.ID, &token.UserID, &token.Token, &token.ExpiresAt, &token.CreatedAt, &token.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RefreshToken{}, ErrRefreshTokenNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*refreshTokenRepository.FindRefreshToken").
			Int64("user_id", userID).
			Msg("failed to find refresh token")
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return token, nil
}

// DeleteRefreshToken removes the user's token, if any.
func (r *refreshTokenRepository) DeleteRefreshToken(ctx context.Context, userID int64) (bool, error) {
	affected, err := r.deleteTokens(ctx, "*refreshTokenRepository.DeleteRefreshToken", sq.Eq{"user_id": userID})
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// DeleteExpiredRefreshTokens removes every token whose expiry is before now
// and returns how many were removed.
func (r *refreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.deleteTokens(ctx, "*refreshTokenRepository.DeleteExpiredRefreshTokens", sq.Lt{"expires_at": now.UTC()})
}

func (r *refreshTokenRepository) deleteTokens(ctx context.Context, funcName string, where sq.Sqlizer) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.deleteRefreshTokensQuery(where)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to delete refresh tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to read affected rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected, nil
}
