package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mscaglia/finbook/internal/platform/category"
)

// Nature marks a transaction as recurring (fixed) or one-off (variable).
// It is orthogonal to the income/expense kind.
type Nature string

const (
	NatureFixed    Nature = "fixed"
	NatureVariable Nature = "variable"
)

// IsValid checks if the nature is one of the two known values
func (n Nature) IsValid() bool {
	return n == NatureFixed || n == NatureVariable
}

// minAmount is the smallest accepted transaction amount (0.01)
var minAmount = decimal.New(1, -2)

// Transaction represents a single income or expense event. UserID is set at
// creation from the authenticated principal and never changes afterwards.
type Transaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Date        time.Time       `json:"date" db:"date"`
	Kind        category.Kind   `json:"kind" db:"kind"`
	Nature      Nature          `json:"nature" db:"nature"`
	CategoryID  uuid.UUID       `json:"category_id" db:"category_id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Validate validates transaction fields
func (t *Transaction) Validate() error {
	if t.Description == "" {
		return ErrMissingDescription
	}

	if len(t.Description) > 255 {
		return ErrDescriptionTooLong
	}

	if t.Amount.Cmp(minAmount) < 0 {
		return ErrInvalidAmount
	}

	if t.Date.IsZero() {
		return ErrMissingDate
	}

	if !t.Nature.IsValid() {
		return ErrInvalidNature
	}

	if t.CategoryID == uuid.Nil {
		return ErrMissingCategory
	}

	return nil
}
