package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/denizokt/spendtrack/internal/models"
	"github.com/denizokt/spendtrack/internal/storage"
)

// TransactionHandler owns CRUD over transactions. All routes require
// a valid token.
type TransactionHandler struct {
	store storage.TransactionStore
	log   *logrus.Logger
}

// NewTransactionHandler constructs the handler.
func NewTransactionHandler(store storage.TransactionStore, log *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{store: store, log: log}
}

// Register attaches transaction routes to the mux.
func (h *TransactionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/transactions", h.handleList)
	mux.HandleFunc("GET /api/transactions/{id}", h.handleGet)
	mux.HandleFunc("POST /api/transactions", h.handleCreate)
	mux.HandleFunc("PUT /api/transactions/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/transactions/{id}", h.handleDelete)
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	txs, err := h.store.ListTransactions(r.Context())
	if err != nil {
		h.log.WithError(err).Error("transactions: list failed")
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	respondJSON(w, http.StatusOK, txs)
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := h.store.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.log.WithError(err).Error("transactions: get failed")
		respondError(w, http.StatusInternalServerError, "failed to fetch transaction")
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	created, err := h.store.CreateTransaction(r.Context(), tx)
	if err != nil {
		h.log.WithError(err).Error("transactions: create failed")
		respondError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/transactions/%d", created.ID))
	respondJSON(w, http.StatusCreated, created)
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if id != tx.ID {
		respondError(w, http.StatusBadRequest, "id mismatch")
		return
	}

	if err := h.store.UpdateTransaction(r.Context(), tx); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.log.WithError(err).Error("transactions: update failed")
		respondError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.log.WithError(err).Error("transactions: delete failed")
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
