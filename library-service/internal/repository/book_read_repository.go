package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/models"
)

const bookSelect = `
	SELECT b.id, b.title, b.isbn, a.id, a.name, a.nationality
	FROM books b
	JOIN authors a ON a.id = b.author_id
`

// BookReadRepository reads books joined with their author. Not cached.
type BookReadRepository struct {
	db *sql.DB
}

func NewBookReadRepository(db *sql.DB) *BookReadRepository {
	return &BookReadRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	book := models.Book{Author: &models.Author{}}
	if err := row.Scan(&book.ID, &book.Title, &book.ISBN, &book.Author.ID, &book.Author.Name, &book.Author.Nationality); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *BookReadRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	book, err := scanBook(r.db.QueryRowContext(ctx, bookSelect+` WHERE b.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (r *BookReadRepository) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, bookSelect+` ORDER BY b.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}
