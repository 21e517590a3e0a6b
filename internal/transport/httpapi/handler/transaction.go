package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mscaglia/finbook/internal/platform/category"
	"github.com/mscaglia/finbook/internal/platform/transaction"
	"github.com/mscaglia/finbook/internal/transport/httpapi/middleware"
)

// dateLayout is the wire format for transaction dates
const dateLayout = "2006-01-02"

// TransactionServiceInterface defines the transaction operations needed by TransactionHandler
type TransactionServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, kind category.Kind, in transaction.Input) (*transaction.Transaction, error)
	GetByID(ctx context.Context, ownerID uuid.UUID, kind category.Kind, id uuid.UUID) (*transaction.Transaction, error)
	Update(ctx context.Context, ownerID uuid.UUID, kind category.Kind, id uuid.UUID, in transaction.Input) (*transaction.Transaction, error)
	Delete(ctx context.Context, ownerID uuid.UUID, kind category.Kind, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, kind category.Kind, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// TransactionHandler serves one kind of transaction. The router mounts two
// instances, one under /incomes and one under /expenses; the mount decides
// the kind of every operation, mirroring the endpoint split of the API.
type TransactionHandler struct {
	service TransactionServiceInterface
	kind    category.Kind
}

// NewTransactionHandler creates a transaction handler bound to a kind
func NewTransactionHandler(service TransactionServiceInterface, kind category.Kind) *TransactionHandler {
	return &TransactionHandler{service: service, kind: kind}
}

// TransactionRequest represents a transaction create/update request body
type TransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Nature      string `json:"nature"`
	CategoryID  string `json:"category_id"`
}

// TransactionResponse represents a transaction on the wire. Amounts are
// rendered with two decimal places, matching the currency scale of the store.
type TransactionResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Kind        string `json:"kind"`
	Nature      string `json:"nature"`
	CategoryID  string `json:"category_id"`
	UserID      string `json:"user_id"`
}

func toTransactionResponse(tx *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
		Date:        tx.Date.Format(dateLayout),
		Kind:        string(tx.Kind),
		Nature:      string(tx.Nature),
		CategoryID:  tx.CategoryID.String(),
		UserID:      tx.UserID.String(),
	}
}

// parseInput converts a request body into a service input, validating shape only
func (h *TransactionHandler) parseInput(req TransactionRequest) (transaction.Input, string) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return transaction.Input{}, "invalid amount"
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return transaction.Input{}, "invalid date, expected YYYY-MM-DD"
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return transaction.Input{}, "invalid category ID"
	}

	return transaction.Input{
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		Nature:      transaction.Nature(req.Nature),
		CategoryID:  categoryID,
	}, ""
}

// Create handles POST /{incomes|expenses}
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in, msg := h.parseInput(req)
	if msg != "" {
		respondError(w, msg, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), principal.ID, h.kind, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, toTransactionResponse(created), http.StatusCreated)
}

// Get handles GET /{incomes|expenses}/{id}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	tx, err := h.service.GetByID(r.Context(), principal.ID, h.kind, id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, toTransactionResponse(tx), http.StatusOK)
}

// List handles GET /{incomes|expenses}
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	filter, msg := parseListFilter(r)
	if msg != "" {
		respondError(w, msg, http.StatusBadRequest)
		return
	}

	txs, err := h.service.List(r.Context(), principal.ID, h.kind, filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	items := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, toTransactionResponse(tx))
	}

	respondJSON(w, items, http.StatusOK)
}

// Update handles PUT /{incomes|expenses}/{id}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in, msg := h.parseInput(req)
	if msg != "" {
		respondError(w, msg, http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), principal.ID, h.kind, id, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, toTransactionResponse(updated), http.StatusOK)
}

// Delete handles DELETE /{incomes|expenses}/{id}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), principal.ID, h.kind, id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseListFilter reads optional query parameters for listings
func parseListFilter(r *http.Request) (transaction.ListFilter, string) {
	var filter transaction.ListFilter
	q := r.URL.Query()

	if v := q.Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, "invalid category_id"
		}
		filter.CategoryID = &id
	}

	if v := q.Get("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, "invalid from date, expected YYYY-MM-DD"
		}
		filter.From = &from
	}

	if v := q.Get("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, "invalid to date, expected YYYY-MM-DD"
		}
		filter.To = &to
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return filter, "invalid limit"
		}
		filter.Limit = limit
	}

	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return filter, "invalid offset"
		}
		filter.Offset = offset
	}

	return filter, ""
}
