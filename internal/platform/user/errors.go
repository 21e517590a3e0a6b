package user

import "github.com/mscaglia/finbook/internal/shared/apperr"

var (
	ErrInvalidEmail        = apperr.Validation("invalid email address")
	ErrInvalidPasswordHash = apperr.Validation("invalid password hash")
	ErrPasswordTooShort    = apperr.Validation("password must be at least 8 characters")
	ErrEmailTaken          = apperr.Conflict("user with this email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login responses do not reveal which accounts exist.
	ErrInvalidCredentials = apperr.Unauthenticated("invalid email or password")

	// ErrUserNotFound is a consistency failure: a validated credential whose
	// subject no longer exists. Distinct from business lookups.
	ErrUserNotFound = apperr.Unauthenticated("account no longer exists")
)
