package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mscaglia/finbook/internal/platform/category"
)

// CategoryServiceInterface defines the category operations needed by CategoryHandler
type CategoryServiceInterface interface {
	Create(ctx context.Context, name string, kind category.Kind) (*category.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	List(ctx context.Context) ([]*category.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string, kind category.Kind) (*category.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryRequest represents a category create/update request body
type CategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Create handles POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), req.Name, category.Kind(req.Kind))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, created, http.StatusCreated)
}

// Get handles GET /categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	cat, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, cat, http.StatusOK)
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if categories == nil {
		categories = []*category.Category{}
	}

	respondJSON(w, categories, http.StatusOK)
}

// Update handles PUT /categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), id, req.Name, category.Kind(req.Kind))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, updated, http.StatusOK)
}

// Delete handles DELETE /categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
