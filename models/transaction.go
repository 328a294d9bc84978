// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TransactionType is the direction of money flow.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two supported kinds.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// AmountPlaces is the number of decimal places amounts are stored with.
const AmountPlaces = 2

const (
	MaxCategoryLength    = 32
	MaxDescriptionLength = 512
)

// Transaction is a single income or expense record owned by exactly one user.
type Transaction struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	TransactionType TransactionType `json:"transaction_type"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// User is the owner summary; it never carries the password digest.
	User UserSummary `json:"user"`
}

// TableName returns the name of the database table
// associated with the Transaction model.
func (t Transaction) TableName() string {
	return "transactions"
}

// NewTransaction is the input of the create operation. Optional values are
// pointers: a nil Description is stored as an empty string and a nil Date
// defaults to the current UTC instant.
type NewTransaction struct {
	UserID          int64
	Amount          decimal.Decimal
	Category        string
	Description     *string
	TransactionType TransactionType
	Date            *time.Time
}

// Normalize returns a copy of n with the category trimmed and title-cased,
// the description trimmed and the amount rounded to [AmountPlaces].
func (n NewTransaction) Normalize() NewTransaction {
	n.Amount = n.Amount.Round(AmountPlaces)
	n.Category = NormalizeCategory(n.Category)

	description := ""
	if n.Description != nil {
		description = strings.TrimSpace(*n.Description)
	}
	n.Description = &description

	if n.Date != nil {
		date := n.Date.UTC()
		n.Date = &date
	}

	return n
}

// NormalizeCategory trims surrounding whitespace and title-cases every word:
// " food  and drinks" becomes "Food  And Drinks".
func NormalizeCategory(category string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(category))
}
