package validators

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-fin-tracker/models"
)

// Field names accepted by [TransactionValidator].
const (
	FieldUserID          = "user_id"
	FieldAmount          = "amount"
	FieldTransactionType = "transaction_type"
	FieldCategory        = "category"
	FieldDescription     = "description"
	FieldDate            = "date"

	FieldPage      = "page"
	FieldPerPage   = "per_page"
	FieldSortOrder = "sort_order"
	FieldFilters   = "filters"
)

// maxAmount is the largest value a NUMERIC(12,2) column holds.
var maxAmount = decimal.RequireFromString("9999999999.99")

// dateSkew tolerates client clocks slightly ahead of the server.
const dateSkew = 5 * time.Minute

// TransactionValidator checks transaction input and list queries.
// Transaction input is expected to be normalized already.
type TransactionValidator struct {
	now func() time.Time
}

// NewTransactionValidator returns a [Validator] for [models.NewTransaction]
// and [models.TransactionQuery].
func NewTransactionValidator() Validator {
	return &TransactionValidator{now: time.Now}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms are
// accepted. When fields is empty every field of the type is checked.
func (v *TransactionValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NewTransaction:
		return v.validateNewTransaction(ctx, value, fields...)
	case *models.NewTransaction:
		return v.validateNewTransaction(ctx, *value, fields...)

	case models.TransactionQuery:
		return v.validateQuery(ctx, value, fields...)
	case *models.TransactionQuery:
		return v.validateQuery(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TransactionValidator) validateNewTransaction(_ context.Context, transaction models.NewTransaction, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldAmount, FieldTransactionType, FieldCategory, FieldDescription, FieldDate}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if transaction.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldAmount:
			if !transaction.Amount.IsPositive() {
				return ErrInvalidAmount
			}
			if transaction.Amount.GreaterThan(maxAmount) {
				return ErrAmountTooLarge
			}
		case FieldTransactionType:
			if !transaction.TransactionType.Valid() {
				return ErrInvalidTransactionType
			}
		case FieldCategory:
			if transaction.Category == "" {
				return ErrEmptyCategory
			}
			if utf8.RuneCountInString(transaction.Category) > models.MaxCategoryLength {
				return ErrCategoryTooLong
			}
		case FieldDescription:
			if transaction.Description != nil && utf8.RuneCountInString(*transaction.Description) > models.MaxDescriptionLength {
				return ErrDescriptionTooLong
			}
		case FieldDate:
			if transaction.Date != nil && transaction.Date.After(v.now().Add(dateSkew)) {
				return ErrDateInFuture
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TransactionValidator) validateQuery(_ context.Context, query models.TransactionQuery, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldPage, FieldPerPage, FieldSortOrder, FieldFilters}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if query.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldPage:
			if query.Page.Page < 1 || !query.Page.OffsetFits() {
				return ErrInvalidPage
			}
		case FieldPerPage:
			if query.Page.PerPage < 1 || query.Page.PerPage > models.MaxPerPage {
				return ErrInvalidPerPage
			}
		case FieldSortOrder:
			if _, ok := models.ParseSortOrder(string(query.Sort.SortOrder)); !ok {
				return ErrInvalidSortOrder
			}
		case FieldFilters:
			if err := validateFilters(query.Filters); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateFilters(filters models.TransactionFilters) error {
	if filters.TransactionType != nil && !filters.TransactionType.Valid() {
		return ErrInvalidTransactionType
	}

	if filters.StartDate != nil && filters.EndDate != nil {
		// a bare end_date covers its whole day, so a start on that day is fine
		if !filters.StartDate.Before(*filters.EndBefore()) {
			return ErrInvalidDateRange
		}
	}

	return nil
}
