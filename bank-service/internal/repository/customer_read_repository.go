package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/models"
	sharedredis "github.com/eaglebank/registry/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const customerViewKeyPrefix = "customer:view:"

// CustomerReadRepository handles all read operations for customers.
// Single-customer lookups go through Redis first (they back the parent check
// on every account write) and fall back to the database, warming the cache.
type CustomerReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.Customer]
}

// NewCustomerReadRepository builds the repository; redisClient may be nil.
func NewCustomerReadRepository(db *sql.DB, redisClient *goredis.Client) *CustomerReadRepository {
	return &CustomerReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.Customer](redisClient, customerViewKeyPrefix, 0),
	}
}

func (r *CustomerReadRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	if customer, ok := r.cache.Get(ctx, id); ok {
		return customer, nil
	}

	query := `SELECT id, name, email, phone FROM customers WHERE id = $1`
	var customer models.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	r.CacheCustomer(ctx, &customer)
	return &customer, nil
}

// List returns every customer ordered by id.
func (r *CustomerReadRepository) List(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, phone FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// CacheCustomer stores or refreshes the cached copy of a customer.
func (r *CustomerReadRepository) CacheCustomer(ctx context.Context, customer *models.Customer) {
	r.cache.Set(ctx, customer.ID, customer)
}

// InvalidateCustomer removes the cached copy of a deleted customer.
func (r *CustomerReadRepository) InvalidateCustomer(ctx context.Context, id int64) {
	r.cache.Delete(ctx, id)
}
