package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-fin-tracker/models"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

var tokenColumns = []string{"id", "user_id", "token", "expires_at", "created_at", "updated_at"}

// transactionColumns selects a transaction joined with its owner summary.
var transactionColumns = []string{
	"t.id",
	"t.user_id",
	"t.amount",
	"t.category",
	"t.description",
	"t.transaction_type",
	"t.created_at",
	"t.updated_at",
	"u.id",
	"u.username",
	"u.email",
}

func (db *DB) createUserQuery(user models.User, now time.Time) (string, []any, error) {
	return db.builder.
		Insert("users").
		Columns("username", "email", "password_hash", "created_at", "updated_at").
		Values(user.Username, user.Email, user.PasswordHash, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
}

func (db *DB) findUserQuery(where sq.Eq) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
}

func (db *DB) touchUserQuery(userID int64, now time.Time) (string, []any, error) {
	return db.builder.
		Update("users").
		Set("updated_at", now).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func (db *DB) insertRefreshTokenQuery(token models.RefreshToken) (string, []any, error) {
	return db.builder.
		Insert("tokens").
		Columns("user_id", "token", "expires_at", "created_at", "updated_at").
		Values(token.UserID, token.Token, token.ExpiresAt, token.CreatedAt, token.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) findRefreshTokenQuery(userID int64) (string, []any, error) {
	return db.builder.
		Select(tokenColumns...).
		From("tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func (db *DB) deleteRefreshTokensQuery(where sq.Sqlizer) (string, []any, error) {
	return db.builder.
		Delete("tokens").
		Where(where).
		ToSql()
}

func (db *DB) findUserSummaryQuery(userID int64) (string, []any, error) {
	return db.builder.
		Select("id", "username", "email").
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func (db *DB) insertTransactionQuery(transaction models.NewTransaction, createdAt, now time.Time) (string, []any, error) {
	description := ""
	if transaction.Description != nil {
		description = *transaction.Description
	}

	return db.builder.
		Insert("transactions").
		Columns("user_id", "amount", "category", "description", "transaction_type", "created_at", "updated_at").
		Values(transaction.UserID, transaction.Amount, transaction.Category, description, string(transaction.TransactionType), createdAt, now).
		Suffix("RETURNING id").
		ToSql()
}

// ownedTransaction is the ownership predicate every single-row read and
// delete is built on.
func ownedTransaction(alias string, userID, transactionID int64) sq.Eq {
	return sq.Eq{alias + "id": transactionID, alias + "user_id": userID}
}

func (db *DB) getTransactionQuery(userID, transactionID int64) (string, []any, error) {
	return db.selectTransactions().
		Where(ownedTransaction("t.", userID, transactionID)).
		ToSql()
}

func (db *DB) deleteTransactionQuery(userID, transactionID int64) (string, []any, error) {
	return db.builder.
		Delete("transactions").
		Where(ownedTransaction("", userID, transactionID)).
		ToSql()
}

func (db *DB) selectTransactions() sq.SelectBuilder {
	return db.builder.
		Select(transactionColumns...).
		From("transactions t").
		Join("users u ON u.id = t.user_id")
}

// transactionFilter builds the WHERE predicate of a list query. The page query
// and the count query are both built from it, so they always agree.
func transactionFilter(query models.TransactionQuery) sq.And {
	predicate := sq.And{sq.Eq{"t.user_id": query.UserID}}

	filters := query.Filters
	if filters.Category != nil {
		// stored categories are normalized on write
		predicate = append(predicate, sq.Eq{"t.category": models.NormalizeCategory(*filters.Category)})
	}
	if filters.TransactionType != nil {
		predicate = append(predicate, sq.Eq{"t.transaction_type": string(*filters.TransactionType)})
	}
	if filters.StartDate != nil {
		predicate = append(predicate, sq.GtOrEq{"t.created_at": filters.StartDate.UTC()})
	}
	if endBefore := filters.EndBefore(); endBefore != nil {
		predicate = append(predicate, sq.Lt{"t.created_at": *endBefore})
	}

	return predicate
}

// sortColumn maps a sort field onto its column. Anything unknown sorts by
// creation time.
func sortColumn(field models.SortField) string {
	switch field {
	case models.SortFieldAmount:
		return "t.amount"
	case models.SortFieldUpdatedAt:
		return "t.updated_at"
	case models.SortFieldCategory:
		return "t.category"
	case models.SortFieldTransactionType:
		return "t.transaction_type"
	case models.SortFieldCreatedAt:
		return "t.created_at"
	default:
		return "t.created_at"
	}
}

func sortDirection(order models.SortOrder) string {
	if order == models.SortOrderAsc {
		return "ASC"
	}
	return "DESC"
}

func (db *DB) listTransactionsQuery(query models.TransactionQuery) (string, []any, error) {
	direction := sortDirection(query.Sort.SortOrder)

	return db.selectTransactions().
		Where(transactionFilter(query)).
		OrderBy(
			fmt.Sprintf("%s %s", sortColumn(query.Sort.SortBy), direction),
			fmt.Sprintf("t.id %s", direction),
		).
		Limit(uint64(query.Page.Limit())).
		Offset(uint64(query.Page.Offset())).
		ToSql()
}

func (db *DB) countTransactionsQuery(query models.TransactionQuery) (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From("transactions t").
		Where(transactionFilter(query)).
		ToSql()
}
