package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=32"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MessageResponse is a plain acknowledgement, e.g. after logout or delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTransactionRequest is the body of POST /api/transactions.
//
// Amount is decoded from either a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     *string         `json:"description,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	Date            *time.Time      `json:"date,omitempty"`
}

// ToNewTransaction binds the request to its owner.
func (r CreateTransactionRequest) ToNewTransaction(userID int64) NewTransaction {
	return NewTransaction{
		UserID:          userID,
		Amount:          r.Amount,
		Category:        r.Category,
		Description:     r.Description,
		TransactionType: r.TransactionType,
		Date:            r.Date,
	}
}

// TransactionResponse wraps a single transaction.
type TransactionResponse struct {
	Message     string      `json:"message,omitempty"`
	Transaction Transaction `json:"transaction"`
}

// DeleteTransactionResponse is returned after a successful delete.
type DeleteTransactionResponse struct {
	Message       string `json:"message"`
	TransactionID int64  `json:"transaction_id"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
}

// VersionResponse is the body of GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
	Date    string `json:"build_date,omitempty"`
	Commit  string `json:"build_commit,omitempty"`
}
