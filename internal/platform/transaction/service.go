package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mscaglia/finbook/internal/platform/category"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// Input carries the caller-editable fields of a transaction. The owner and
// the kind are never part of it: the owner comes from the authenticated
// principal and the kind from the operation being performed.
type Input struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Nature      Nature
	CategoryID  uuid.UUID
}

// Service provides business logic for transaction operations. Every read,
// update and delete checks ownership before acting.
type Service struct {
	repo       Repository
	categories CategoryFinder
}

// NewService creates a new transaction service
func NewService(repo Repository, categories CategoryFinder) *Service {
	return &Service{repo: repo, categories: categories}
}

// Create records a new transaction of the given kind owned by ownerID
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, kind category.Kind, in Input) (*Transaction, error) {
	tx := &Transaction{
		ID:          uuid.New(),
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		Kind:        kind,
		Nature:      in.Nature,
		CategoryID:  in.CategoryID,
		UserID:      ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategoryKind(ctx, in.CategoryID, kind); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// GetByID retrieves an owned transaction by ID
func (s *Service) GetByID(ctx context.Context, ownerID uuid.UUID, kind category.Kind, id uuid.UUID) (*Transaction, error) {
	return s.getOwned(ctx, ownerID, kind, id)
}

// Update replaces the editable fields of an owned transaction. The owner
// recorded at creation is preserved unconditionally.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, kind category.Kind, id uuid.UUID, in Input) (*Transaction, error) {
	tx, err := s.getOwned(ctx, ownerID, kind, id)
	if err != nil {
		return nil, err
	}

	tx.Description = in.Description
	tx.Amount = in.Amount
	tx.Date = in.Date
	tx.Nature = in.Nature
	tx.CategoryID = in.CategoryID
	tx.UpdatedAt = time.Now()

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategoryKind(ctx, in.CategoryID, kind); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return tx, nil
}

// Delete removes an owned transaction. No cascading effects.
func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, kind category.Kind, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, kind, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

// List retrieves the owner's transactions of the given kind
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, kind category.Kind, filter ListFilter) ([]*Transaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	txs, err := s.repo.ListByOwner(ctx, ownerID, kind, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// getOwned loads a transaction and verifies it belongs to the principal and
// is visible through the current operation's kind. A transaction that fails
// either check is reported as not found, hiding its existence.
func (s *Service) getOwned(ctx context.Context, ownerID uuid.UUID, kind category.Kind, id uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.UserID != ownerID || tx.Kind != kind {
		return nil, ErrTransactionNotFound
	}

	return tx, nil
}

// checkCategoryKind enforces that the referenced category exists and carries
// the same kind as the transaction being written
func (s *Service) checkCategoryKind(ctx context.Context, categoryID uuid.UUID, kind category.Kind) error {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}

	if cat.Kind != kind {
		return ErrCategoryKindMismatch
	}

	return nil
}
