package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/registry/shared/models"
)

// AccountWriteRepository handles all state-mutating operations for accounts.
// Callers check the customer reference before writing.
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (account_number, balance, customer_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, account.AccountNumber, account.Balance, account.Customer.ID).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountWriteRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET account_number = $1, balance = $2, customer_id = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, account.AccountNumber, account.Balance, account.Customer.ID, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireRow(result, "account", account.ID)
}

func (r *AccountWriteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRow(result, "account", id)
}
