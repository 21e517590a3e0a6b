package category

import "github.com/mscaglia/finbook/internal/shared/apperr"

var (
	ErrMissingName = apperr.Validation("category name is required")
	ErrNameTooLong = apperr.Validation("category name exceeds 100 characters")
	ErrInvalidKind = apperr.Validation("category kind must be income or expense")

	ErrCategoryNotFound = apperr.NotFound("category")

	ErrDuplicateName = apperr.BusinessRule("a category with this name already exists")
	ErrCategoryInUse = apperr.BusinessRule("category is referenced by existing transactions")
)
