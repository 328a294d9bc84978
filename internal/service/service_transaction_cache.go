package service

import (
	"context"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

// TransactionCacheService serves repeated list queries from a page cache.
// Writes invalidate every cached page of the affected user. Cache failures
// are logged and otherwise ignored: the store stays the source of truth.
type TransactionCacheService struct {
	inner TransactionService
	cache TransactionPageCache
}

func NewTransactionCacheService(cache TransactionPageCache) TransactionServiceWrapper {
	return &TransactionCacheService{cache: cache}
}

func (c *TransactionCacheService) CreateTransaction(ctx context.Context, transaction models.NewTransaction) (models.Transaction, error) {
	created, err := c.inner.CreateTransaction(ctx, transaction)
	if err != nil {
		return models.Transaction{}, err
	}

	c.invalidate(ctx, created.UserID)
	return created, nil
}

func (c *TransactionCacheService) GetTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error) {
	return c.inner.GetTransaction(ctx, userID, transactionID)
}

func (c *TransactionCacheService) DeleteTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error) {
	deleted, err := c.inner.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		return models.Transaction{}, err
	}

	c.invalidate(ctx, userID)
	return deleted, nil
}

func (c *TransactionCacheService) ListTransactions(ctx context.Context, query models.TransactionQuery) (models.TransactionPage, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*TransactionCacheService.ListTransactions").
		Int64("user_id", query.UserID).
		Logger()

	page, key, found, err := c.cache.GetPage(ctx, query)
	if err != nil {
		log.Warn().Err(err).Msg("cache lookup failed")
	}
	if found {
		log.Debug().Msg("transaction page served from cache")
		return page, nil
	}

	page, err = c.inner.ListTransactions(ctx, query)
	if err != nil {
		return models.TransactionPage{}, err
	}

	if key == "" {
		return page, nil
	}
	if err = c.cache.SetPage(ctx, key, page); err != nil {
		log.Warn().Err(err).Msg("failed to cache transaction page")
	}

	return page, nil
}

func (c *TransactionCacheService) invalidate(ctx context.Context, userID int64) {
	if err := c.cache.Invalidate(ctx, userID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*TransactionCacheService.invalidate").
			Int64("user_id", userID).
			Msg("failed to invalidate cached transaction pages")
	}
}

func (c *TransactionCacheService) Wrap(inner TransactionService) TransactionService {
	c.inner = inner
	return c
}
