package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-tracker/internal/adapter"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/mock"
	"github.com/MKhiriev/go-fin-tracker/models"
)

type testCLI struct {
	*cli
	adapter *mock.MockServerAdapter
	out     *bytes.Buffer
}

func newTestCLI(t *testing.T) testCLI {
	t.Helper()
	serverAdapter := mock.NewMockServerAdapter(gomock.NewController(t))
	out := &bytes.Buffer{}

	c := newCLI(serverAdapter, filepath.Join(t.TempDir(), "token"), logger.Nop())
	c.stdout = out
	c.stdin = strings.NewReader("")
	c.readPassword = func(string) (string, error) { return "secret-password", nil }

	return testCLI{cli: c, adapter: serverAdapter, out: out}
}

func (tc testCLI) storeToken(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, os.WriteFile(tc.tokenFile, []byte(token), 0o600))
}

func TestRun_Usage(t *testing.T) {
	tc := newTestCLI(t)

	assert.ErrorIs(t, tc.run(context.Background(), nil), errUsage)
	assert.ErrorIs(t, tc.run(context.Background(), []string{"transfer"}), errUsage)
}

func TestRegister(t *testing.T) {
	tc := newTestCLI(t)
	tc.adapter.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret-password"}).
		Return(models.RegisterResponse{Message: "user registered successfully", UserID: 7}, nil)

	err := tc.run(context.Background(), []string{"register", "-username", "alice", "-email", "alice@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "user registered successfully (id 7)\n", tc.out.String())
}

func TestRegister_MissingFlags(t *testing.T) {
	tc := newTestCLI(t)

	err := tc.run(context.Background(), []string{"register", "-email", "alice@example.com"})

	assert.ErrorIs(t, err, errUsage)
}

func TestLoginSavesTokenAndLogoutRemovesIt(t *testing.T) {
	tc := newTestCLI(t)
	gomock.InOrder(
		tc.adapter.EXPECT().
			Login(gomock.Any(), models.LoginRequest{Email: "alice@example.com", Password: "secret-password"}).
			Return(models.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "bearer"}, nil),
		tc.adapter.EXPECT().SetToken("access"),
		tc.adapter.EXPECT().Logout(gomock.Any()).Return(nil),
	)

	require.NoError(t, tc.run(context.Background(), []string{"login", "-email", "alice@example.com"}))

	saved, err := os.ReadFile(tc.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "access", string(saved))

	info, err := os.Stat(tc.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, tc.run(context.Background(), []string{"logout"}))
	assert.NoFileExists(t, tc.tokenFile)
}

func TestProtectedCommandsNeedToken(t *testing.T) {
	for _, command := range []string{"logout", "add", "list", "get", "delete"} {
		t.Run(command, func(t *testing.T) {
			tc := newTestCLI(t)
			assert.ErrorIs(t, tc.run(context.Background(), []string{command}), errNotLoggedIn)
		})
	}
}

func TestRejectedTokenIsForgotten(t *testing.T) {
	tc := newTestCLI(t)
	tc.storeToken(t, "stale")
	tc.adapter.EXPECT().SetToken("stale")
	tc.adapter.EXPECT().GetTransaction(gomock.Any(), int64(3)).
		Return(models.Transaction{}, errors.New("wrapped: "+adapter.ErrUnauthorized.Error()))

	// only sentinel-wrapped errors clear the token
	require.Error(t, tc.run(context.Background(), []string{"get", "3"}))
	assert.FileExists(t, tc.tokenFile)

	tc.adapter.EXPECT().SetToken("stale")
	tc.adapter.EXPECT().GetTransaction(gomock.Any(), int64(3)).
		Return(models.Transaction{}, adapter.ErrUnauthorized)

	err := tc.run(context.Background(), []string{"get", "3"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.NoFileExists(t, tc.tokenFile)
}

func TestAdd(t *testing.T) {
	tc := newTestCLI(t)
	tc.storeToken(t, "access")
	tc.adapter.EXPECT().SetToken("access")

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	description := "lunch"
	tc.adapter.EXPECT().
		CreateTransaction(gomock.Any(), models.CreateTransactionRequest{
			Amount:          decimal.RequireFromString("12.5"),
			Category:        "food",
			Description:     &description,
			TransactionType: models.TransactionTypeExpense,
			Date:            &date,
		}).
		Return(models.Transaction{ID: 11, Category: "Food"}, nil)

	err := tc.run(context.Background(), []string{
		"add", "-amount", "12.5", "-category", "food", "-description", "lunch", "-date", "2026-03-14",
	})

	require.NoError(t, err)
	assert.Contains(t, tc.out.String(), `"id": 11`)
}

func TestAdd_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "amount", args: []string{"add", "-amount", "lots", "-category", "food"}},
		{name: "date", args: []string{"add", "-amount", "1", "-category", "food", "-date", "14/03/2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCLI(t)
			tc.storeToken(t, "access")
			tc.adapter.EXPECT().SetToken("access")

			assert.ErrorIs(t, tc.run(context.Background(), tt.args), errUsage)
		})
	}
}

func TestList(t *testing.T) {
	tc := newTestCLI(t)
	tc.storeToken(t, "access")
	tc.adapter.EXPECT().SetToken("access")

	income := models.TransactionTypeIncome
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	tc.adapter.EXPECT().
		ListTransactions(gomock.Any(), models.TransactionQuery{
			Page:    models.PageRequest{Page: 2, PerPage: 5},
			Sort:    models.Sort{SortBy: models.SortFieldAmount, SortOrder: models.SortOrderAsc},
			Filters: models.TransactionFilters{TransactionType: &income, EndDate: &to},
		}).
		Return(models.TransactionPage{
			Data: []models.Transaction{{
				ID:              4,
				Amount:          decimal.RequireFromString("100"),
				Category:        "Salary",
				TransactionType: models.TransactionTypeIncome,
				CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			}},
			Meta: models.PageMeta{Page: 2, PerPage: 5, TotalRecords: 6, TotalPages: 2},
		}, nil)

	err := tc.run(context.Background(), []string{
		"list", "-page", "2", "-per-page", "5", "-sort-by", "amount", "-sort-order", "asc", "-type", "income", "-to", "2026-03-31",
	})

	require.NoError(t, err)
	assert.Contains(t, tc.out.String(), "100.00")
	assert.Contains(t, tc.out.String(), "2026-03-01")
	assert.Contains(t, tc.out.String(), "page 2 of 2, 6 record(s)")
}

func TestDelete(t *testing.T) {
	tc := newTestCLI(t)
	tc.storeToken(t, "access")
	tc.adapter.EXPECT().SetToken("access")
	tc.adapter.EXPECT().DeleteTransaction(gomock.Any(), int64(9)).Return(int64(9), nil)

	require.NoError(t, tc.run(context.Background(), []string{"delete", "9"}))
	assert.Equal(t, "transaction 9 deleted\n", tc.out.String())
}

func TestTransactionIDArg(t *testing.T) {
	for _, args := range [][]string{nil, {"0"}, {"-3"}, {"abc"}, {"1", "2"}} {
		_, err := transactionIDArg(args)
		assert.ErrorIs(t, err, errUsage, "args %v", args)
	}

	id, err := transactionIDArg([]string{"15"})
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)
}

func TestHealth_PrintsReportEvenWhenUnavailable(t *testing.T) {
	tc := newTestCLI(t)
	tc.adapter.EXPECT().Health(gomock.Any()).
		Return(models.HealthResponse{Status: "unavailable", Database: "unavailable"}, adapter.ErrServiceUnavailable)

	err := tc.run(context.Background(), []string{"health"})

	assert.ErrorIs(t, err, adapter.ErrServiceUnavailable)
	assert.Contains(t, tc.out.String(), `"database": "unavailable"`)
}

func TestVersion(t *testing.T) {
	tc := newTestCLI(t)
	tc.adapter.EXPECT().Version(gomock.Any()).
		Return(models.VersionResponse{Version: "1.2.3", Date: "N/A", Commit: "N/A"}, nil)

	require.NoError(t, tc.run(context.Background(), []string{"version"}))
	assert.Contains(t, tc.out.String(), "Server version: 1.2.3")
}

func TestPromptPassword_PipedInput(t *testing.T) {
	tc := newTestCLI(t)
	tc.stdin = strings.NewReader("hunter22\r\n")

	password, err := tc.promptPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "hunter22", password)
}
