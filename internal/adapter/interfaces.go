// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the fin-tracker REST API.
//
// [ServerAdapter] decouples the CLI from the transport. Error responses are
// mapped onto the sentinel values in errors.go so that callers can use
// [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401); the
// server's "detail" message is kept in the error text.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-fin-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the fin-tracker server.
type ServerAdapter interface {
	// SetToken stores the access token attached to authenticated requests.
	SetToken(token string)

	// Token returns the currently held access token, or "".
	Token() string

	Register(ctx context.Context, request models.RegisterRequest) (models.RegisterResponse, error)

	// Login exchanges credentials for a token pair and keeps the access
	// token for subsequent calls.
	Login(ctx context.Context, request models.LoginRequest) (models.TokenPair, error)

	// Logout revokes the refresh token on the server and forgets the
	// access token locally.
	Logout(ctx context.Context) error

	CreateTransaction(ctx context.Context, request models.CreateTransactionRequest) (models.Transaction, error)
	ListTransactions(ctx context.Context, query models.TransactionQuery) (models.TransactionPage, error)
	GetTransaction(ctx context.Context, transactionID int64) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID int64) (int64, error)

	Health(ctx context.Context) (models.HealthResponse, error)
	Version(ctx context.Context) (models.VersionResponse, error)
}
