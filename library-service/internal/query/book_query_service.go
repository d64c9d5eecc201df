package query

import (
	"context"

	"github.com/eaglebank/registry/library-service/internal/repository"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/models"
	"github.com/eaglebank/registry/shared/utils"
)

type BookQueryService struct {
	readRepo *repository.BookReadRepository
}

func NewBookQueryService(readRepo *repository.BookReadRepository) *BookQueryService {
	return &BookQueryService{readRepo: readRepo}
}

func (s *BookQueryService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.readRepo.List(ctx)
}

func (s *BookQueryService) GetBook(ctx context.Context, q cqrs.GetBookQuery) (*models.Book, error) {
	return s.readRepo.GetByID(ctx, q.BookID)
}

// SearchBooks matches any part of the title, ignoring case.
func (s *BookQueryService) SearchBooks(ctx context.Context, q cqrs.SearchBooksQuery) ([]models.Book, error) {
	books, err := s.readRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := []models.Book{}
	for _, book := range books {
		if utils.ContainsFold(book.Title, q.Title) {
			matches = append(matches, book)
		}
	}
	return matches, nil
}
