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

// PersonHandler owns CRUD over persons plus the total-spending
// aggregate. All routes require a valid token; the gate is applied by
// the server, not here.
type PersonHandler struct {
	store storage.PersonStore
	log   *logrus.Logger
}

// NewPersonHandler constructs the handler.
func NewPersonHandler(store storage.PersonStore, log *logrus.Logger) *PersonHandler {
	return &PersonHandler{store: store, log: log}
}

// Register attaches person routes to the mux.
func (h *PersonHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/persons", h.handleList)
	mux.HandleFunc("GET /api/persons/{id}", h.handleGet)
	mux.HandleFunc("POST /api/persons", h.handleCreate)
	mux.HandleFunc("PUT /api/persons/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/persons/{id}", h.handleDelete)
	mux.HandleFunc("GET /api/persons/{id}/totalspending", h.handleTotalSpending)
}

func (h *PersonHandler) handleList(w http.ResponseWriter, r *http.Request) {
	persons, err := h.store.ListPersons(r.Context())
	if err != nil {
		h.log.WithError(err).Error("persons: list failed")
		respondError(w, http.StatusInternalServerError, "failed to list persons")
		return
	}
	if persons == nil {
		persons = []models.Person{}
	}
	respondJSON(w, http.StatusOK, persons)
}

func (h *PersonHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	person, err := h.store.GetPerson(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "person not found")
			return
		}
		h.log.WithError(err).Error("persons: get failed")
		respondError(w, http.StatusInternalServerError, "failed to fetch person")
		return
	}
	respondJSON(w, http.StatusOK, person)
}

func (h *PersonHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var person models.Person
	if err := json.NewDecoder(r.Body).Decode(&person); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	created, err := h.store.CreatePerson(r.Context(), person)
	if err != nil {
		h.log.WithError(err).Error("persons: create failed")
		respondError(w, http.StatusInternalServerError, "failed to create person")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/persons/%d", created.ID))
	respondJSON(w, http.StatusCreated, created)
}

func (h *PersonHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var person models.Person
	if err := json.NewDecoder(r.Body).Decode(&person); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if id != person.ID {
		respondError(w, http.StatusBadRequest, "id mismatch")
		return
	}

	if err := h.store.UpdatePerson(r.Context(), person); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "person not found")
			return
		}
		h.log.WithError(err).Error("persons: update failed")
		respondError(w, http.StatusInternalServerError, "failed to update person")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PersonHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.DeletePerson(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "person not found")
			return
		}
		h.log.WithError(err).Error("persons: delete failed")
		respondError(w, http.StatusInternalServerError, "failed to delete person")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PersonHandler) handleTotalSpending(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	// Sums over the transaction set, so an unknown person yields zero
	// rather than a 404.
	total, err := h.store.TotalSpending(r.Context(), id)
	if err != nil {
		h.log.WithError(err).Error("persons: total spending failed")
		respondError(w, http.StatusInternalServerError, "failed to compute total spending")
		return
	}
	respondJSON(w, http.StatusOK, total)
}
