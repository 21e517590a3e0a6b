package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mscaglia/finbook/internal/platform/category"
)

// ListFilter narrows a listing of owned transactions
type ListFilter struct {
	CategoryID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Repository defines the ledger store contract for transactions
type Repository interface {
	// Create persists a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// GetByID retrieves a transaction by ID regardless of owner;
	// ownership is enforced by the service layer
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Update updates a transaction row
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction row
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByOwner retrieves an owner's transactions of the given kind,
	// newest first, applying the filter
	ListByOwner(ctx context.Context, ownerID uuid.UUID, kind category.Kind, filter ListFilter) ([]*Transaction, error)

	// SumByMonth sums an owner's transaction amounts of the given kind
	// dated within (month, year); zero when the period is empty
	SumByMonth(ctx context.Context, ownerID uuid.UUID, kind category.Kind, month, year int) (decimal.Decimal, error)

	// SumByMonthGroupedByCategory sums like SumByMonth but grouped by
	// category name; categories without matches are absent from the map
	SumByMonthGroupedByCategory(ctx context.Context, ownerID uuid.UUID, kind category.Kind, month, year int) (map[string]decimal.Decimal, error)
}

// CategoryFinder is the slice of the category store the transaction service
// needs to enforce the kind rule
type CategoryFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
}
