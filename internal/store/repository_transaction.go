package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

// transactionRepository is the SQL implementation of [TransactionRepository].
// Each transaction row is returned joined with its owner's summary.
type transactionRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewTransactionRepository constructs a [TransactionRepository] backed by db.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	logger.Debug().Msg("creating transaction repository")
	return &transactionRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		transaction     models.Transaction
		transactionType string
	)

	err := row.Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.Amount,
		&transaction.Category,
		&transaction.Description,
		&transactionType,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
		&transaction.User.ID,
		&transaction.User.Username,
		&transaction.User.Email,
	)
	if err != nil {
		return models.Transaction{}, err
	}

	transaction.TransactionType = models.TransactionType(transactionType)
	transaction.CreatedAt = transaction.CreatedAt.UTC()
	transaction.UpdatedAt = transaction.UpdatedAt.UTC()

	return transaction, nil
}

// CreateTransaction checks that the owner exists and inserts the row in one
// transaction. On any failure nothing is persisted.
//
// The input is stored as given; normalization is the caller's job.
func (r *transactionRepository) CreateTransaction(ctx context.Context, newTransaction models.NewTransaction) (models.Transaction, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*transactionRepository.CreateTransaction").
		Int64("user_id", newTransaction.UserID).
		Logger()

	now := r.now()
	createdAt := now
	if newTransaction.Date != nil {
		createdAt = newTransaction.Date.UTC().Truncate(time.Microsecond)
	}

	userQuery, userArgs, err := r.db.findUserSummaryQuery(newTransaction.UserID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	insertQuery, insertArgs, err := r.db.insertTransactionQuery(newTransaction, createdAt, now)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	transaction := models.Transaction{
		UserID:          newTransaction.UserID,
		Amount:          newTransaction.Amount,
		Category:        newTransaction.Category,
		TransactionType: newTransaction.TransactionType,
		CreatedAt:       createdAt,
		UpdatedAt:       now,
	}
	if newTransaction.Description != nil {
		transaction.Description = *newTransaction.Description
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	err = r.db.WithTx(ctx, nil, func(ctx context.Context, tx DBTX) error {
		err := tx.QueryRowContext(ctx, userQuery, userArgs...).
			Scan(&transaction.User.ID, &transaction.User.Username, &transaction.User.Email)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if err = tx.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&transaction.ID); err != nil {
			if r.db.classify(err) == ForeignKeyViolation {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Msg("failed to create transaction")
		}
		return models.Transaction{}, err
	}

	log.Debug().Int64("transaction_id", transaction.ID).Msg("transaction created")
	return transaction, nil
}

// GetTransaction returns the caller's transaction by id.
func (r *transactionRepository) GetTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.getTransactionQuery(userID, transactionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	transaction, err := scanTransaction(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*transactionRepository.GetTransaction").
			Int64("user_id", userID).
			Int64("transaction_id", transactionID).
			Msg("failed to get transaction")
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return transaction, nil
}

// DeleteTransaction reads the row and deletes it under one transaction. The
// delete statement repeats the ownership predicate, so a row removed
// concurrently yields [ErrTransactionNotFound] and never touches another
// user's data.
func (r *transactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID int64) (models.Transaction, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*transactionRepository.DeleteTransaction").
		Int64("user_id", userID).
		Int64("transaction_id", transactionID).
		Logger()

	selectQuery, selectArgs, err := r.db.getTransactionQuery(userID, transactionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteQuery, deleteArgs, err := r.db.deleteTransactionQuery(userID, transactionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var deleted models.Transaction
	err = r.db.WithTx(ctx, nil, func(ctx context.Context, tx DBTX) error {
		transaction, err := scanTransaction(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		result, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if affected == 0 {
			return ErrTransactionNotFound
		}

		deleted = transaction
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrTransactionNotFound) {
			log.Err(err).Msg("failed to delete transaction")
		}
		return models.Transaction{}, err
	}

	log.Debug().Msg("transaction deleted")
	return deleted, nil
}

// ListTransactions counts the matching rows and reads one page of them inside
// a single read transaction so both results reflect the same data.
func (r *transactionRepository) ListTransactions(ctx context.Context, query models.TransactionQuery) (models.TransactionList, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*transactionRepository.ListTransactions").
		Int64("user_id", query.UserID).
		Logger()

	countQuery, countArgs, err := r.db.countTransactionsQuery(query)
	if err != nil {
		return models.TransactionList{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	pageQuery, pageArgs, err := r.db.listTransactionsQuery(query)
	if err != nil {
		return models.TransactionList{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	list := models.TransactionList{Items: make([]models.Transaction, 0, query.Page.Limit())}
	err = r.db.WithTx(ctx, r.db.snapshotTxOptions, func(ctx context.Context, tx DBTX) error {
		if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&list.Total); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if list.Total == 0 {
			return nil
		}

		rows, err := tx.QueryContext(ctx, pageQuery, pageArgs...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			transaction, err := scanTransaction(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			list.Items = append(list.Items, transaction)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Msg("failed to list transactions")
		return models.TransactionList{}, err
	}

	return list, nil
}
