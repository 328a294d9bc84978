package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID          = errors.New("invalid user ID")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrAmountTooLarge         = errors.New("amount is too large")
	ErrInvalidTransactionType = errors.New("transaction_type must be either income or expense")
	ErrEmptyCategory          = errors.New("category is required")
	ErrCategoryTooLong        = errors.New("category must be at most 32 characters")
	ErrDescriptionTooLong     = errors.New("description must be at most 512 characters")
	ErrDateInFuture           = errors.New("date must not be in the future")

	ErrInvalidPage      = errors.New("page must be greater than or equal to 1")
	ErrInvalidPerPage   = errors.New("per_page must be between 1 and 100")
	ErrInvalidSortOrder = errors.New("sort_order must be either asc or desc")
	ErrInvalidDateRange = errors.New("start_date must not be after end_date")

	ErrInvalidUsername = errors.New("username is required and must be at most 32 characters")
	ErrInvalidEmail    = errors.New("a valid email address is required")
	ErrInvalidPassword = errors.New("password must be between 8 and 72 characters")
	ErrEmptyPassword   = errors.New("password is required")
)
