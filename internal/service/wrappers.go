package service

// AuthServiceWrapper decorates an AuthService, e.g. with validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// TransactionServiceWrapper decorates a TransactionService, e.g. with
// validation or caching.
type TransactionServiceWrapper interface {
	Wrap(TransactionService) TransactionService
}
