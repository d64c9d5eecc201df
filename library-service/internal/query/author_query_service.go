package query

import (
	"context"
	"strings"

	"github.com/eaglebank/registry/library-service/internal/repository"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/models"
)

type AuthorQueryService struct {
	readRepo *repository.AuthorReadRepository
}

func NewAuthorQueryService(readRepo *repository.AuthorReadRepository) *AuthorQueryService {
	return &AuthorQueryService{readRepo: readRepo}
}

func (s *AuthorQueryService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return s.readRepo.List(ctx)
}

func (s *AuthorQueryService) GetAuthor(ctx context.Context, q cqrs.GetAuthorQuery) (*models.Author, error) {
	return s.readRepo.GetByID(ctx, q.AuthorID)
}

// SearchAuthors matches the whole name, ignoring case.
func (s *AuthorQueryService) SearchAuthors(ctx context.Context, q cqrs.SearchAuthorsQuery) ([]models.Author, error) {
	authors, err := s.readRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := []models.Author{}
	for _, author := range authors {
		if strings.EqualFold(author.Name, q.Name) {
			matches = append(matches, author)
		}
	}
	return matches, nil
}
