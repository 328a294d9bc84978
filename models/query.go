// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"math"
	"time"
)

// SortField is the closed set of keys a transaction list can be ordered by.
type SortField string

const (
	SortFieldCreatedAt       SortField = "created_at"
	SortFieldAmount          SortField = "amount"
	SortFieldUpdatedAt       SortField = "updated_at"
	SortFieldCategory        SortField = "category"
	SortFieldTransactionType SortField = "transaction_type"
)

// ParseSortField maps a caller-supplied key onto a [SortField].
//
// The mapping is permissive on purpose: "date" is accepted as an alias of
// created_at and any unknown or empty key falls back to [SortFieldCreatedAt]
// instead of failing the request.
func ParseSortField(key string) SortField {
	switch key {
	case "created_at", "date":
		return SortFieldCreatedAt
	case "amount":
		return SortFieldAmount
	case "updated_at":
		return SortFieldUpdatedAt
	case "category":
		return SortFieldCategory
	case "transaction_type":
		return SortFieldTransactionType
	default:
		return SortFieldCreatedAt
	}
}

// SortOrder is the direction of ordering.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ParseSortOrder parses "asc"/"desc". An empty value yields the default
// [SortOrderDesc]; any other value is reported with ok == false.
func ParseSortOrder(value string) (order SortOrder, ok bool) {
	switch SortOrder(value) {
	case "":
		return SortOrderDesc, true
	case SortOrderAsc:
		return SortOrderAsc, true
	case SortOrderDesc:
		return SortOrderDesc, true
	default:
		return "", false
	}
}

// Sort is the ordering applied to a transaction list. It is echoed back to
// the caller in the list metadata.
type Sort struct {
	SortBy    SortField `json:"sort_by"`
	SortOrder SortOrder `json:"sort_order"`
}

// TransactionFilters are the optional predicates of a list query. All set
// filters are combined with AND. They are echoed back to the caller as given.
type TransactionFilters struct {
	Category        *string          `json:"category"`
	TransactionType *TransactionType `json:"transaction_type"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
}

// EndBefore returns the exclusive upper bound derived from EndDate. A bare
// date (midnight UTC) covers its whole UTC day, so the bound is the following
// midnight. Any other instant is inclusive of itself: the bound is one
// microsecond later, the resolution timestamps are stored with. Returns nil
// when EndDate is not set.
func (f TransactionFilters) EndBefore() *time.Time {
	if f.EndDate == nil {
		return nil
	}

	end := f.EndDate.UTC()
	day := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if !end.Equal(day) {
		bound := end.Truncate(time.Microsecond).Add(time.Microsecond)
		return &bound
	}

	nextDay := day.AddDate(0, 0, 1)
	return &nextDay
}

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageRequest is a 1-indexed page selection.
type PageRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Offset is the number of rows skipped before the requested page. It
// saturates at math.MaxInt instead of wrapping around.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}
	if !p.OffsetFits() {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// OffsetFits reports whether (Page-1)*PerPage is representable as an int.
func (p PageRequest) OffsetFits() bool {
	if p.Page <= 1 || p.PerPage <= 0 {
		return true
	}
	return p.Page-1 <= math.MaxInt/p.PerPage
}

// Limit is the maximum number of rows on the requested page.
func (p PageRequest) Limit() int {
	return p.PerPage
}

// TransactionQuery is the full input of the list operation. UserID scopes
// every row to its owner.
type TransactionQuery struct {
	UserID  int64
	Filters TransactionFilters
	Sort    Sort
	Page    PageRequest
}

// TransactionList is what the store returns for a query: one page of rows and
// the number of rows matching the same filters.
type TransactionList struct {
	Items []Transaction
	Total int64
}

// PageMeta is the metadata envelope of a transaction list.
type PageMeta struct {
	Page         int                `json:"page"`
	PerPage      int                `json:"per_page"`
	TotalRecords int64              `json:"total_records"`
	TotalPages   int64              `json:"total_pages"`
	HasNext      bool               `json:"has_next"`
	HasPrev      bool               `json:"has_prev"`
	Filters      TransactionFilters `json:"filters"`
	Sort         Sort               `json:"sort"`
}

// NewPageMeta computes pagination metadata for total matching rows.
// An empty result still reports one page so the metadata never degenerates.
func NewPageMeta(total int64, page PageRequest) PageMeta {
	perPage := int64(page.PerPage)

	totalPages := int64(1)
	if total > 0 && perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	return PageMeta{
		Page:         page.Page,
		PerPage:      page.PerPage,
		TotalRecords: total,
		TotalPages:   totalPages,
		HasNext:      int64(page.Page) < totalPages,
		HasPrev:      page.Page > 1,
	}
}

// TransactionPage is the list response: rows plus metadata.
type TransactionPage struct {
	Data []Transaction `json:"data"`
	Meta PageMeta      `json:"meta"`
}
