package service

import (
	"context"

	"github.com/MKhiriev/go-fin-tracker/internal/validators"
	"github.com/MKhiriev/go-fin-tracker/models"
)

// TransactionValidationService checks transaction input and list queries
// before they reach the wrapped TransactionService.
type TransactionValidationService struct {
	inner     TransactionService
	validator validators.Validator
}

func NewTransactionValidationService() TransactionServiceWrapper {
	return &TransactionValidationService{
		validator: validators.NewTransactionValidator(),
	}
}

// CreateTransaction validates the normalized form of transaction, so limits
// apply to what is actually stored.
func (v *TransactionValidationService) CreateTransaction(ctx context.Context, transaction models.NewTransaction) (models.Transaction, error) {
	normalized := transaction.Normalize()
	if err := v.validator.Validate(ctx, normalized); err != nil {
		return models.Transaction{}, invalid(err)
	}
	return v.inner.CreateTransaction(ctx, normalized)
}

func (v *TransactionValidationService) GetTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error) {
	if userID <= 0 || transactionID <= 0 {
		return models.Transaction{}, ErrTransactionNotFound
	}
	return v.inner.GetTransaction(ctx, userID, transactionID)
}

func (v *TransactionValidationService) DeleteTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error) {
	if userID <= 0 || transactionID <= 0 {
		return models.Transaction{}, ErrTransactionNotFound
	}
	return v.inner.DeleteTransaction(ctx, userID, transactionID)
}

func (v *TransactionValidationService) ListTransactions(ctx context.Context, query models.TransactionQuery) (models.TransactionPage, error) {
	query = NormalizeQuery(query)
	if err := v.validator.Validate(ctx, query); err != nil {
		return models.TransactionPage{}, invalid(err)
	}
	return v.inner.ListTransactions(ctx, query)
}

func (v *TransactionValidationService) Wrap(inner TransactionService) TransactionService {
	v.inner = inner
	return v
}
