package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/models"
)

// CustomerWriteRepository handles all state-mutating operations for customers.
type CustomerWriteRepository struct {
	db *sql.DB
}

func NewCustomerWriteRepository(db *sql.DB) *CustomerWriteRepository {
	return &CustomerWriteRepository{db: db}
}

// Create inserts customer and sets its assigned id.
func (r *CustomerWriteRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, customer.Name, customer.Email, customer.Phone).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update replaces every column of an existing customer.
func (r *CustomerWriteRepository) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, customer.Name, customer.Email, customer.Phone, customer.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return requireRow(result, "customer", customer.ID)
}

func (r *CustomerWriteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return requireRow(result, "customer", id)
}

func requireRow(result sql.Result, entity string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, apperr.ErrNotFound)
	}
	return nil
}
