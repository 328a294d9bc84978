package validators

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-tracker/models"
)

func ptr[T any](v T) *T { return &v }

func validNewTransaction() models.NewTransaction {
	return models.NewTransaction{
		UserID:          1,
		Amount:          decimal.RequireFromString("12.50"),
		Category:        "Food",
		Description:     ptr("lunch"),
		TransactionType: models.TransactionTypeExpense,
	}
}

func validQuery() models.TransactionQuery {
	return models.TransactionQuery{
		UserID: 1,
		Sort:   models.Sort{SortBy: models.SortFieldCreatedAt, SortOrder: models.SortOrderDesc},
		Page:   models.PageRequest{Page: 1, PerPage: 10},
	}
}

func TestTransactionValidator_Dispatch(t *testing.T) {
	v := NewTransactionValidator()
	ctx := context.Background()

	tx := validNewTransaction()
	query := validQuery()

	require.NoError(t, v.Validate(ctx, tx))
	require.NoError(t, v.Validate(ctx, &tx))
	require.NoError(t, v.Validate(ctx, query))
	require.NoError(t, v.Validate(ctx, &query))
	require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	require.ErrorIs(t, v.Validate(ctx, tx, "unknown"), ErrUnknownField)
}

func TestTransactionValidator_NewTransaction(t *testing.T) {
	v := NewTransactionValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.NewTransaction)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.NewTransaction) {}},
		{name: "no user", mutate: func(tx *models.NewTransaction) { tx.UserID = 0 }, wantErr: ErrInvalidUserID},
		{name: "zero amount", mutate: func(tx *models.NewTransaction) { tx.Amount = decimal.Zero }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(tx *models.NewTransaction) { tx.Amount = decimal.NewFromInt(-5) }, wantErr: ErrInvalidAmount},
		{name: "amount overflows column", mutate: func(tx *models.NewTransaction) { tx.Amount = decimal.RequireFromString("10000000000") }, wantErr: ErrAmountTooLarge},
		{name: "unknown type", mutate: func(tx *models.NewTransaction) { tx.TransactionType = "transfer" }, wantErr: ErrInvalidTransactionType},
		{name: "empty category", mutate: func(tx *models.NewTransaction) { tx.Category = "" }, wantErr: ErrEmptyCategory},
		{name: "category of 32 runes", mutate: func(tx *models.NewTransaction) { tx.Category = strings.Repeat("ж", 32) }},
		{name: "category too long", mutate: func(tx *models.NewTransaction) { tx.Category = strings.Repeat("a", 33) }, wantErr: ErrCategoryTooLong},
		{name: "nil description", mutate: func(tx *models.NewTransaction) { tx.Description = nil }},
		{name: "description too long", mutate: func(tx *models.NewTransaction) { tx.Description = ptr(strings.Repeat("a", 513)) }, wantErr: ErrDescriptionTooLong},
		{name: "past date", mutate: func(tx *models.NewTransaction) { tx.Date = ptr(time.Now().AddDate(0, -1, 0)) }},
		{name: "future date", mutate: func(tx *models.NewTransaction) { tx.Date = ptr(time.Now().Add(24 * time.Hour)) }, wantErr: ErrDateInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validNewTransaction()
			tt.mutate(&tx)

			err := v.Validate(ctx, tx)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransactionValidator_FieldScoping(t *testing.T) {
	v := NewTransactionValidator()

	tx := validNewTransaction()
	tx.UserID = 0

	assert.NoError(t, v.Validate(context.Background(), tx, FieldAmount, FieldCategory))
	assert.ErrorIs(t, v.Validate(context.Background(), tx, FieldUserID), ErrInvalidUserID)
}

func TestTransactionValidator_Query(t *testing.T) {
	v := NewTransactionValidator()
	ctx := context.Background()

	day := func(d int) *time.Time { return ptr(time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)) }
	at := func(d, h int) *time.Time { return ptr(time.Date(2026, 3, d, h, 0, 0, 0, time.UTC)) }

	tests := []struct {
		name    string
		mutate  func(*models.TransactionQuery)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.TransactionQuery) {}},
		{name: "page zero", mutate: func(q *models.TransactionQuery) { q.Page.Page = 0 }, wantErr: ErrInvalidPage},
		{name: "offset overflows", mutate: func(q *models.TransactionQuery) { q.Page.Page = 1<<62 + 1; q.Page.PerPage = 4 }, wantErr: ErrInvalidPage},
		{name: "largest page", mutate: func(q *models.TransactionQuery) { q.Page.Page = math.MaxInt/100 + 1; q.Page.PerPage = 100 }},
		{name: "page past largest", mutate: func(q *models.TransactionQuery) { q.Page.Page = math.MaxInt/100 + 2; q.Page.PerPage = 100 }, wantErr: ErrInvalidPage},
		{name: "per_page zero", mutate: func(q *models.TransactionQuery) { q.Page.PerPage = 0 }, wantErr: ErrInvalidPerPage},
		{name: "per_page 100", mutate: func(q *models.TransactionQuery) { q.Page.PerPage = 100 }},
		{name: "per_page 101", mutate: func(q *models.TransactionQuery) { q.Page.PerPage = 101 }, wantErr: ErrInvalidPerPage},
		{name: "empty sort order", mutate: func(q *models.TransactionQuery) { q.Sort.SortOrder = "" }},
		{name: "bad sort order", mutate: func(q *models.TransactionQuery) { q.Sort.SortOrder = "sideways" }, wantErr: ErrInvalidSortOrder},
		{name: "unknown sort field is fine", mutate: func(q *models.TransactionQuery) { q.Sort.SortBy = "password_hash" }},
		{name: "bad type filter", mutate: func(q *models.TransactionQuery) { q.Filters.TransactionType = ptr(models.TransactionType("gift")) }, wantErr: ErrInvalidTransactionType},
		{name: "same day range", mutate: func(q *models.TransactionQuery) { q.Filters.StartDate = day(5); q.Filters.EndDate = day(5) }},
		{name: "same instant range", mutate: func(q *models.TransactionQuery) { q.Filters.StartDate = at(5, 10); q.Filters.EndDate = at(5, 10) }},
		{name: "start after timed end", mutate: func(q *models.TransactionQuery) { q.Filters.StartDate = at(5, 10); q.Filters.EndDate = at(5, 9) }, wantErr: ErrInvalidDateRange},
		{name: "inverted range", mutate: func(q *models.TransactionQuery) { q.Filters.StartDate = day(6); q.Filters.EndDate = day(5) }, wantErr: ErrInvalidDateRange},
		{name: "no user", mutate: func(q *models.TransactionQuery) { q.UserID = 0 }, wantErr: ErrInvalidUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := validQuery()
			tt.mutate(&query)

			err := v.Validate(ctx, query)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
