package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/models"
)

type AuthorWriteRepository struct {
	db *sql.DB
}

func NewAuthorWriteRepository(db *sql.DB) *AuthorWriteRepository {
	return &AuthorWriteRepository{db: db}
}

func (r *AuthorWriteRepository) Create(ctx context.Context, author *models.Author) error {
	query := `INSERT INTO authors (name, nationality) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, author.Name, author.Nationality).Scan(&author.ID); err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

func (r *AuthorWriteRepository) Update(ctx context.Context, author *models.Author) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE authors SET name = $1, nationality = $2 WHERE id = $3`,
		author.Name, author.Nationality, author.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	return requireRow(result, "author", author.ID)
}

func (r *AuthorWriteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return requireRow(result, "author", id)
}

// requireRow turns a write that touched nothing into ErrNotFound.
func requireRow(result sql.Result, entity string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, apperr.ErrNotFound)
	}
	return nil
}
