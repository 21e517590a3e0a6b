package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mscaglia/finbook/internal/platform/category"
	"github.com/mscaglia/finbook/internal/platform/transaction"
)

// TransactionRepository implements transaction.Repository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create persists a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, description, amount, date, kind, nature, category_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.Description,
		tx.Amount,
		tx.Date,
		tx.Kind,
		tx.Nature,
		tx.CategoryID,
		tx.UserID,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID regardless of owner
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, description, amount, date, kind, nature, category_id, user_id, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// Update updates a transaction row
func (r *TransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET description = $2, amount = $3, date = $4, nature = $5, category_id = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.Description,
		tx.Amount,
		tx.Date,
		tx.Nature,
		tx.CategoryID,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction row
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// ListByOwner retrieves an owner's transactions of the given kind, newest first
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, kind category.Kind, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, description, amount, date, kind, nature, category_id, user_id, created_at, updated_at
		FROM transactions
		WHERE user_id = $1 AND kind = $2
	`
	args := []any{ownerID, kind}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// SumByMonth sums an owner's transaction amounts of the given kind within (month, year)
func (r *TransactionRepository) SumByMonth(ctx context.Context, ownerID uuid.UUID, kind category.Kind, month, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND kind = $2
		  AND EXTRACT(MONTH FROM date) = $3
		  AND EXTRACT(YEAR FROM date) = $4
	`

	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, ownerID, kind, month, year).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return sum, nil
}

// SumByMonthGroupedByCategory sums like SumByMonth, grouped by category name
func (r *TransactionRepository) SumByMonthGroupedByCategory(ctx context.Context, ownerID uuid.UUID, kind category.Kind, month, year int) (map[string]decimal.Decimal, error) {
	query := `
		SELECT c.name, COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.kind = $2
		  AND EXTRACT(MONTH FROM t.date) = $3
		  AND EXTRACT(YEAR FROM t.date) = $4
		GROUP BY c.name
	`

	rows, err := r.pool.Query(ctx, query, ownerID, kind, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var name string
		var sum decimal.Decimal
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan category sum: %w", err)
		}
		sums[name] = sum
	}

	return sums, rows.Err()
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.Description,
		&tx.Amount,
		&tx.Date,
		&tx.Kind,
		&tx.Nature,
		&tx.CategoryID,
		&tx.UserID,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
