// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/store"
	"github.com/MKhiriev/go-fin-tracker/models"
)

// transactionService is the concrete implementation of TransactionService.
//
// It normalizes input and translates store errors into service kinds. Range
// checks on input live in TransactionValidationService, which always wraps
// it in production.
type transactionService struct {
	transactionRepository store.TransactionRepository

	logger *logger.Logger
}

func NewTransactionService(transactionRepository store.TransactionRepository, logger *logger.Logger) TransactionService {
	logger.Debug().Msg("creating transaction service")
	return &transactionService{
		transactionRepository: transactionRepository,
		logger:                logger,
	}
}

// CreateTransaction normalizes and stores transaction. A missing owner yields
// [ErrUserNotFound]; nothing is persisted on failure.
func (s *transactionService) CreateTransaction(ctx context.Context, transaction models.NewTransaction) (models.Transaction, error) {
	created, err := s.transactionRepository.CreateTransaction(ctx, transaction.Normalize())
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Transaction{}, ErrUserNotFound
	}
	if err != nil {
		return models.Transaction{}, unavailable(err)
	}

	return created, nil
}

// GetTransaction returns [ErrTransactionNotFound] both for missing ids and
// for ids owned by somebody else.
func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error) {
	transaction, err := s.transactionRepository.GetTransaction(ctx, userID, transactionID)
	if errors.Is(err, store.ErrTransactionNotFound) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		return models.Transaction{}, unavailable(err)
	}

	return transaction, nil
}

// DeleteTransaction removes the caller's transaction and returns it.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error) {
	deleted, err := s.transactionRepository.DeleteTransaction(ctx, userID, transactionID)
	if errors.Is(err, store.ErrTransactionNotFound) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		return models.Transaction{}, unavailable(err)
	}

	logger.FromContext(ctx).Info().
		Int64("user_id", userID).
		Int64("transaction_id", transactionID).
		Msg("transaction deleted")
	return deleted, nil
}

// ListTransactions runs the query engine: it normalizes the query, reads one
// page plus the matching total, and assembles the metadata envelope with the
// effective filters and sort echoed back.
func (s *transactionService) ListTransactions(ctx context.Context, query models.TransactionQuery) (models.TransactionPage, error) {
	query = NormalizeQuery(query)
	if _, ok := models.ParseSortOrder(string(query.Sort.SortOrder)); !ok {
		return models.TransactionPage{}, invalid(errors.New("sort_order must be either asc or desc"))
	}

	list, err := s.transactionRepository.ListTransactions(ctx, query)
	if err != nil {
		return models.TransactionPage{}, unavailable(err)
	}

	items := list.Items
	if items == nil {
		items = []models.Transaction{}
	}

	meta := models.NewPageMeta(list.Total, query.Page)
	meta.Filters = query.Filters
	meta.Sort = query.Sort

	return models.TransactionPage{Data: items, Meta: meta}, nil
}

// NormalizeQuery fills in the defaults of a list query and maps the sort key
// through the whitelist. Unknown sort keys become created_at; an invalid sort
// order is left untouched so validation can report it.
func NormalizeQuery(query models.TransactionQuery) models.TransactionQuery {
	if query.Page.Page == 0 {
		query.Page.Page = models.DefaultPage
	}
	if query.Page.PerPage == 0 {
		query.Page.PerPage = models.DefaultPerPage
	}

	query.Sort.SortBy = models.ParseSortField(string(query.Sort.SortBy))
	if order, ok := models.ParseSortOrder(string(query.Sort.SortOrder)); ok {
		query.Sort.SortOrder = order
	}

	return query
}
