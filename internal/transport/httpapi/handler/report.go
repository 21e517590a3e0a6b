package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mscaglia/finbook/internal/platform/report"
	"github.com/mscaglia/finbook/internal/transport/httpapi/middleware"
)

// ReportServiceInterface defines the report operations needed by ReportHandler
type ReportServiceInterface interface {
	MonthlyBalance(ctx context.Context, ownerID uuid.UUID, month, year int) (*report.MonthlyBalance, error)
}

// ReportHandler handles balance report HTTP requests
type ReportHandler struct {
	service ReportServiceInterface
	now     func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface) *ReportHandler {
	return &ReportHandler{service: service, now: time.Now}
}

// BalanceResponse represents a monthly balance on the wire. Amounts are
// rendered with two decimal places, matching the currency scale of the store.
type BalanceResponse struct {
	Month             int               `json:"month"`
	Year              int               `json:"year"`
	TotalIncome       string            `json:"total_income"`
	TotalExpense      string            `json:"total_expense"`
	Balance           string            `json:"balance"`
	IncomeByCategory  map[string]string `json:"income_by_category"`
	ExpenseByCategory map[string]string `json:"expense_by_category"`
}

func toBalanceResponse(b *report.MonthlyBalance) BalanceResponse {
	income := make(map[string]string, len(b.IncomeByCategory))
	for name, sum := range b.IncomeByCategory {
		income[name] = sum.StringFixed(2)
	}
	expense := make(map[string]string, len(b.ExpenseByCategory))
	for name, sum := range b.ExpenseByCategory {
		expense[name] = sum.StringFixed(2)
	}

	return BalanceResponse{
		Month:             b.Month,
		Year:              b.Year,
		TotalIncome:       b.TotalIncome.StringFixed(2),
		TotalExpense:      b.TotalExpense.StringFixed(2),
		Balance:           b.Balance.StringFixed(2),
		IncomeByCategory:  income,
		ExpenseByCategory: expense,
	}
}

// GetMonthlyBalance handles GET /reports/balance/{year}/{month}
func (h *ReportHandler) GetMonthlyBalance(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, "invalid year", http.StatusBadRequest)
		return
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		respondError(w, "invalid month", http.StatusBadRequest)
		return
	}

	balance, err := h.service.MonthlyBalance(r.Context(), principal.ID, month, year)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, toBalanceResponse(balance), http.StatusOK)
}

// GetCurrentBalance handles GET /reports/balance/current
func (h *ReportHandler) GetCurrentBalance(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	today := h.now()
	balance, err := h.service.MonthlyBalance(r.Context(), principal.ID, int(today.Month()), today.Year())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, toBalanceResponse(balance), http.StatusOK)
}
