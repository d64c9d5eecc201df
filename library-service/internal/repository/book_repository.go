package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/registry/shared/models"
)

// BookWriteRepository writes books. book.Author must be set.
type BookWriteRepository struct {
	db *sql.DB
}

func NewBookWriteRepository(db *sql.DB) *BookWriteRepository {
	return &BookWriteRepository{db: db}
}

func (r *BookWriteRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (title, isbn, author_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, book.Title, book.ISBN, book.Author.ID).Scan(&book.ID); err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *BookWriteRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET title = $1, isbn = $2, author_id = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, book.Title, book.ISBN, book.Author.ID, book.ID)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return requireRow(result, "book", book.ID)
}

func (r *BookWriteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return requireRow(result, "book", id)
}
