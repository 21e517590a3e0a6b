package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for categories
type Repository interface {
	// Create creates a new category
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*Category, error)

	// Update updates a category's name and kind
	Update(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByName checks for a category with the given name,
	// case-insensitively, ignoring the excluded ID (uuid.Nil excludes none)
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// InUse reports whether any transaction of any owner references the category
	InUse(ctx context.Context, id uuid.UUID) (bool, error)
}
