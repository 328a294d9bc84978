package http

import (
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/go-fin-tracker/models"
)

// dateLayouts are tried in order for start_date and end_date. A bare date is
// midnight UTC of that day.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly}

// parseTransactionQuery reads the list parameters. Absent values stay zero
// so that the service applies its defaults; only unparsable values fail here.
// Range checks belong to validation.
func parseTransactionQuery(values url.Values) (models.TransactionQuery, error) {
	var query models.TransactionQuery

	var err error
	if query.Page.Page, err = intParam(values, "page"); err != nil {
		return models.TransactionQuery{}, err
	}
	if query.Page.PerPage, err = intParam(values, "per_page"); err != nil {
		return models.TransactionQuery{}, err
	}

	query.Sort = models.Sort{
		SortBy:    models.SortField(values.Get("sort_by")),
		SortOrder: models.SortOrder(values.Get("sort_order")),
	}

	if category := values.Get("category"); category != "" {
		query.Filters.Category = &category
	}
	if kind := values.Get("transaction_type"); kind != "" {
		transactionType := models.TransactionType(kind)
		query.Filters.TransactionType = &transactionType
	}
	if query.Filters.StartDate, err = dateParam(values, "start_date"); err != nil {
		return models.TransactionQuery{}, err
	}
	if query.Filters.EndDate, err = dateParam(values, "end_date"); err != nil {
		return models.TransactionQuery{}, err
	}

	return query, nil
}

func intParam(values url.Values, name string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidQueryParam(name, "an integer")
	}
	return value, nil
}

func dateParam(values url.Values, name string) (*time.Time, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, invalidQueryParam(name, "a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}
