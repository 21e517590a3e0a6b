package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mscaglia/finbook/internal/platform/category"
	"github.com/mscaglia/finbook/internal/shared/apperr"
)

// ErrInvalidMonth is raised before any store query when the month is out of range
var ErrInvalidMonth = apperr.Validation("month must be between 1 and 12")

// Aggregator is the slice of the ledger store the report service consumes
type Aggregator interface {
	SumByMonth(ctx context.Context, ownerID uuid.UUID, kind category.Kind, month, year int) (decimal.Decimal, error)
	SumByMonthGroupedByCategory(ctx context.Context, ownerID uuid.UUID, kind category.Kind, month, year int) (map[string]decimal.Decimal, error)
}

// Service computes monthly balance summaries
type Service struct {
	store Aggregator
}

// NewService creates a new report service
func NewService(store Aggregator) *Service {
	return &Service{store: store}
}

// MonthlyBalance computes the balance summary for one (principal, month, year).
// The four sums are independent queries with no shared read snapshot; a write
// landing between them can skew a single report, which is acceptable on this
// read-only path. A month with no transactions yields exact zero totals and
// empty category maps.
func (s *Service) MonthlyBalance(ctx context.Context, ownerID uuid.UUID, month, year int) (*MonthlyBalance, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	totalIncome, err := s.store.SumByMonth(ctx, ownerID, category.KindIncome, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}

	totalExpense, err := s.store.SumByMonth(ctx, ownerID, category.KindExpense, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	incomeByCategory, err := s.store.SumByMonthGroupedByCategory(ctx, ownerID, category.KindIncome, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to group income by category: %w", err)
	}

	expenseByCategory, err := s.store.SumByMonthGroupedByCategory(ctx, ownerID, category.KindExpense, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses by category: %w", err)
	}

	if incomeByCategory == nil {
		incomeByCategory = map[string]decimal.Decimal{}
	}
	if expenseByCategory == nil {
		expenseByCategory = map[string]decimal.Decimal{}
	}

	return &MonthlyBalance{
		Month:             month,
		Year:              year,
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		Balance:           totalIncome.Sub(totalExpense),
		IncomeByCategory:  incomeByCategory,
		ExpenseByCategory: expenseByCategory,
	}, nil
}
