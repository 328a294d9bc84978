// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/internal/utils"
	"github.com/MKhiriev/go-fin-tracker/models"
)

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoUserInContext)
		return
	}

	var request models.CreateTransactionRequest
	if err := utils.DecodeJSON(r, &request); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.createTransaction").Send()
		writeError(w, r, ErrInvalidJSON)
		return
	}

	created, err := h.services.TransactionService.CreateTransaction(r.Context(), request.ToNewTransaction(user.UserID))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.TransactionResponse{
		Message:     "transaction created successfully",
		Transaction: created,
	}, http.StatusCreated)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoUserInContext)
		return
	}

	query, err := parseTransactionQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	query.UserID = userID

	page, err := h.services.TransactionService.ListTransactions(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoUserInContext)
		return
	}

	transactionID, err := transactionIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	transaction, err := h.services.TransactionService.GetTransaction(r.Context(), userID, transactionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.TransactionResponse{Transaction: transaction}, http.StatusOK)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoUserInContext)
		return
	}

	transactionID, err := transactionIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	deleted, err := h.services.TransactionService.DeleteTransaction(r.Context(), userID, transactionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DeleteTransactionResponse{
		Message:       "transaction deleted successfully",
		TransactionID: deleted.ID,
	}, http.StatusOK)
}

func transactionIDFromPath(r *http.Request) (int64, error) {
	transactionID, err := strconv.ParseInt(chi.URLParam(r, "transaction_id"), 10, 64)
	if err != nil {
		return 0, ErrInvalidTransactionID
	}
	return transactionID, nil
}
