package store

import "github.com/MKhiriev/go-fin-tracker/internal/logger"

// Repositories groups every repository backed by one database connection.
type Repositories struct {
	UserRepository         UserRepository
	RefreshTokenRepository RefreshTokenRepository
	TransactionRepository  TransactionRepository
}

// NewRepositories constructs all repositories on top of db.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db, logger),
		RefreshTokenRepository: NewRefreshTokenRepository(db, logger),
		TransactionRepository:  NewTransactionRepository(db, logger),
	}
}
