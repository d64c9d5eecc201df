package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/models"
	sharedredis "github.com/eaglebank/registry/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const (
	authorViewKeyPrefix = "author:view:"
	authorViewTTL       = time.Hour
)

// AuthorReadRepository reads authors, single lookups served from Redis when
// a client is configured.
type AuthorReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.Author]
}

func NewAuthorReadRepository(db *sql.DB, redisClient *goredis.Client) *AuthorReadRepository {
	return &AuthorReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.Author](redisClient, authorViewKeyPrefix, authorViewTTL),
	}
}

func (r *AuthorReadRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	if author, ok := r.cache.Get(ctx, id); ok {
		return author, nil
	}

	var author models.Author
	err := r.db.QueryRowContext(ctx, `SELECT id, name, nationality FROM authors WHERE id = $1`, id).
		Scan(&author.ID, &author.Name, &author.Nationality)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("author %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	r.cache.Set(ctx, author.ID, &author)
	return &author, nil
}

func (r *AuthorReadRepository) List(ctx context.Context) ([]models.Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, nationality FROM authors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := []models.Author{}
	for rows.Next() {
		var author models.Author
		if err := rows.Scan(&author.ID, &author.Name, &author.Nationality); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

func (r *AuthorReadRepository) CacheAuthor(ctx context.Context, author *models.Author) {
	r.cache.Set(ctx, author.ID, author)
}

func (r *AuthorReadRepository) InvalidateAuthor(ctx context.Context, id int64) {
	r.cache.Delete(ctx, id)
}
