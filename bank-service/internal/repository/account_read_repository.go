package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/models"
)

const accountSelect = `
	SELECT a.id, a.account_number, a.balance, c.id, c.name, c.email, c.phone
	FROM accounts a
	JOIN customers c ON c.id = a.customer_id
`

// AccountReadRepository reads accounts together with their owning customer.
// Accounts are not cached: the embedded customer would go stale whenever the
// customer is replaced.
type AccountReadRepository struct {
	db *sql.DB
}

func NewAccountReadRepository(db *sql.DB) *AccountReadRepository {
	return &AccountReadRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	account := models.Account{Customer: &models.Customer{}}
	err := row.Scan(
		&account.ID, &account.AccountNumber, &account.Balance,
		&account.Customer.ID, &account.Customer.Name, &account.Customer.Email, &account.Customer.Phone,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRowContext(ctx, accountSelect+` WHERE a.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// List returns every account ordered by id. The deletion guard and the
// account-number search both scan this full list.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, accountSelect+` ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
