package category

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a category, and through it every transaction, as money
// coming in or going out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// IsValid checks if the kind is one of the two known values
func (k Kind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// Category is a named grouping for transactions. Categories are shared
// reference data: they carry no owner and are visible to every principal.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Kind      Kind      `json:"kind" db:"kind"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Validate validates category fields
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}

	if len(c.Name) > 100 {
		return ErrNameTooLong
	}

	if !c.Kind.IsValid() {
		return ErrInvalidKind
	}

	return nil
}
