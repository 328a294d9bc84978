package http

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-tracker/internal/service"
	"github.com/MKhiriev/go-fin-tracker/models"
)

func TestParseTransactionQuery_Empty(t *testing.T) {
	query, err := parseTransactionQuery(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, models.TransactionQuery{}, query)
}

func TestParseTransactionQuery_AllParams(t *testing.T) {
	values, err := url.ParseQuery("page=3&per_page=20&sort_by=date&sort_order=desc&category=Rent" +
		"&transaction_type=expense&start_date=2026-01-01&end_date=2026-01-31T18:30:00%2B03:00")
	require.NoError(t, err)

	query, err := parseTransactionQuery(values)
	require.NoError(t, err)

	assert.Equal(t, models.PageRequest{Page: 3, PerPage: 20}, query.Page)
	assert.Equal(t, models.Sort{SortBy: "date", SortOrder: "desc"}, query.Sort)
	assert.Equal(t, "Rent", *query.Filters.Category)
	assert.Equal(t, models.TransactionTypeExpense, *query.Filters.TransactionType)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *query.Filters.StartDate)
	assert.Equal(t, time.Date(2026, 1, 31, 15, 30, 0, 0, time.UTC), *query.Filters.EndDate)
}

func TestParseTransactionQuery_Errors(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "page=1.5", want: "query parameter page must be an integer"},
		{raw: "per_page=ten", want: "query parameter per_page must be an integer"},
		{raw: "start_date=yesterday", want: "query parameter start_date must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"},
		{raw: "end_date=31.01.2026", want: "query parameter end_date must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			_, err = parseTransactionQuery(values)

			assert.ErrorIs(t, err, service.ErrInvalidArgument)
			assert.EqualError(t, err, "invalid argument: "+tt.want)
		})
	}
}

func TestParseTransactionQuery_RangeChecksAreDeferred(t *testing.T) {
	values, err := url.ParseQuery("page=-1&per_page=1000&sort_order=sideways&transaction_type=gift")
	require.NoError(t, err)

	query, err := parseTransactionQuery(values)

	require.NoError(t, err)
	assert.Equal(t, -1, query.Page.Page)
	assert.Equal(t, 1000, query.Page.PerPage)
}
