package transaction

import "github.com/mscaglia/finbook/internal/shared/apperr"

var (
	ErrMissingDescription = apperr.Validation("description is required")
	ErrDescriptionTooLong = apperr.Validation("description exceeds 255 characters")
	ErrInvalidAmount      = apperr.Validation("amount must be at least 0.01")
	ErrMissingDate        = apperr.Validation("date is required")
	ErrInvalidNature      = apperr.Validation("nature must be fixed or variable")
	ErrMissingCategory    = apperr.Validation("category is required")

	// ErrTransactionNotFound is returned both when the id does not exist and
	// when it exists but belongs to another principal. Collapsing the two
	// keeps a caller from probing which ids exist.
	ErrTransactionNotFound = apperr.NotFound("transaction")

	ErrCategoryKindMismatch = apperr.BusinessRule("category kind does not match the transaction kind")
)
