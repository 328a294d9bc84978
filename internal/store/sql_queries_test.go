package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

func TestListTransactionsQuery(t *testing.T) {
	db, _ := newMockDB(t)

	category := "Food"
	lowerCategory := "  eating out "
	endAt := time.Date(2026, 1, 31, 18, 30, 0, 0, time.UTC)
	expense := models.TransactionTypeExpense
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    models.TransactionQuery
		wantSQL  string
		wantArgs []any
	}{
		{
			name:  "defaults",
			query: models.TransactionQuery{UserID: 7, Page: models.PageRequest{Page: 1, PerPage: 10}},
			wantSQL: "SELECT t.id, t.user_id, t.amount, t.category, t.description, t.transaction_type, t.created_at, t.updated_at, u.id, u.username, u.email " +
				"FROM transactions t JOIN users u ON u.id = t.user_id WHERE (t.user_id = $1) " +
				"ORDER BY t.created_at DESC, t.id DESC LIMIT 10 OFFSET 0",
			wantArgs: []any{int64(7)},
		},
		{
			name: "all filters",
			query: models.TransactionQuery{
				UserID: 7,
				Filters: models.TransactionFilters{
					Category:        &category,
					TransactionType: &expense,
					StartDate:       &start,
					EndDate:         &end,
				},
				Sort: models.Sort{SortBy: models.SortFieldCategory, SortOrder: models.SortOrderAsc},
				Page: models.PageRequest{Page: 3, PerPage: 25},
			},
			wantSQL: "SELECT t.id, t.user_id, t.amount, t.category, t.description, t.transaction_type, t.created_at, t.updated_at, u.id, u.username, u.email " +
				"FROM transactions t JOIN users u ON u.id = t.user_id " +
				"WHERE (t.user_id = $1 AND t.category = $2 AND t.transaction_type = $3 AND t.created_at >= $4 AND t.created_at < $5) " +
				"ORDER BY t.category ASC, t.id ASC LIMIT 25 OFFSET 50",
			wantArgs: []any{int64(7), "Food", "expense", start, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "category case and timed end_date",
			query: models.TransactionQuery{
				UserID: 7,
				Filters: models.TransactionFilters{
					Category: &lowerCategory,
					EndDate:  &endAt,
				},
				Page: models.PageRequest{Page: 1, PerPage: 10},
			},
			wantSQL: "SELECT t.id, t.user_id, t.amount, t.category, t.description, t.transaction_type, t.created_at, t.updated_at, u.id, u.username, u.email " +
				"FROM transactions t JOIN users u ON u.id = t.user_id " +
				"WHERE (t.user_id = $1 AND t.category = $2 AND t.created_at < $3) " +
				"ORDER BY t.created_at DESC, t.id DESC LIMIT 10 OFFSET 0",
			wantArgs: []any{int64(7), "Eating Out", time.Date(2026, 1, 31, 18, 30, 0, 1000, time.UTC)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := db.listTransactionsQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCountTransactionsQuery_SharesFilter(t *testing.T) {
	db, _ := newMockDB(t)
	income := models.TransactionTypeIncome

	sql, args, err := db.countTransactionsQuery(models.TransactionQuery{
		UserID:  7,
		Filters: models.TransactionFilters{TransactionType: &income},
		Page:    models.PageRequest{Page: 4, PerPage: 10},
	})

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM transactions t WHERE (t.user_id = $1 AND t.transaction_type = $2)", sql)
	assert.Equal(t, []any{int64(7), "income"}, args)
}

func TestSortColumn(t *testing.T) {
	tests := []struct {
		field models.SortField
		want  string
	}{
		{models.SortFieldCreatedAt, "t.created_at"},
		{models.SortFieldAmount, "t.amount"},
		{models.SortFieldUpdatedAt, "t.updated_at"},
		{models.SortFieldCategory, "t.category"},
		{models.SortFieldTransactionType, "t.transaction_type"},
		{models.SortField("password_hash"), "t.created_at"},
		{models.SortField(""), "t.created_at"},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			assert.Equal(t, tt.want, sortColumn(tt.field))
		})
	}
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, "ASC", sortDirection(models.SortOrderAsc))
	assert.Equal(t, "DESC", sortDirection(models.SortOrderDesc))
	assert.Equal(t, "DESC", sortDirection(""))
}

func TestSQLiteBuilderUsesQuestionPlaceholders(t *testing.T) {
	db := newSQLiteDB(nil, config.DB{}, logger.Nop())

	sql, _, err := db.getTransactionQuery(7, 42)

	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE t.id = ? AND t.user_id = ?")
}
