package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: Unclassified},
		{name: "plain error", err: errors.New("boom"), want: Unclassified},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: UniqueViolation},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", pgError(pgerrcode.UniqueViolation)), want: UniqueViolation},
		{name: "foreign key violation", err: pgError(pgerrcode.ForeignKeyViolation), want: ForeignKeyViolation},
		{name: "serialization failure", err: pgError(pgerrcode.SerializationFailure), want: Transient},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected), want: Transient},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: Transient},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), want: Transient},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: Transient},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError), want: Unclassified},
		{name: "check violation", err: pgError(pgerrcode.CheckViolation), want: Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	classifier := NewSQLiteErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: Unclassified},
		{name: "plain error", err: errors.New("boom"), want: Unclassified},
		{name: "unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: UniqueViolation},
		{name: "primary key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, want: UniqueViolation},
		{name: "foreign key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, want: ForeignKeyViolation},
		{name: "check", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, want: Unclassified},
		{name: "busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: Transient},
		{name: "locked", err: sqlite3.Error{Code: sqlite3.ErrLocked}, want: Transient},
		{name: "deadline exceeded", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: Transient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.err))
		})
	}
}

func TestErrorClassification_String(t *testing.T) {
	assert.Equal(t, "unique_violation", UniqueViolation.String())
	assert.Equal(t, "foreign_key_violation", ForeignKeyViolation.String())
	assert.Equal(t, "transient", Transient.String())
	assert.Equal(t, "unclassified", Unclassified.String())
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "fin.db?_foreign_keys=on", sqliteDSN("fin.db"))
	assert.Equal(t, "fin.db?cache=shared&_foreign_keys=on", sqliteDSN("fin.db?cache=shared"))
	assert.Equal(t, "fin.db?_fk=1", sqliteDSN("fin.db?_fk=1"))
}
