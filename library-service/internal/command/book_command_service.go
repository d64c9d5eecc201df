package command

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/eaglebank/registry/library-service/internal/repository"
	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/database"
	"github.com/eaglebank/registry/shared/events"
	"github.com/eaglebank/registry/shared/models"
)

// BookCommandService writes books. A book is only stored against an author
// that exists.
type BookCommandService struct {
	writeRepo  *repository.BookWriteRepository
	authorRepo *repository.AuthorReadRepository
	publisher  EventPublisher
}

func NewBookCommandService(
	writeRepo *repository.BookWriteRepository,
	authorRepo *repository.AuthorReadRepository,
	publisher EventPublisher,
) *BookCommandService {
	return &BookCommandService{writeRepo: writeRepo, authorRepo: authorRepo, publisher: publisher}
}

func (s *BookCommandService) CreateBook(ctx context.Context, cmd cqrs.CreateBookCommand) (*models.Book, error) {
	author, err := s.resolveAuthor(ctx, cmd.AuthorID)
	if err != nil {
		return nil, err
	}
	book := &models.Book{Title: cmd.Title, ISBN: cmd.ISBN, Author: author}
	if err := s.writeRepo.Create(ctx, book); err != nil {
		return nil, authorGone(err)
	}
	s.publish(ctx, events.BookCreated, events.BookEvent{BookID: book.ID, Title: book.Title, AuthorID: author.ID})
	return book, nil
}

func (s *BookCommandService) UpdateBook(ctx context.Context, cmd cqrs.UpdateBookCommand) (*models.Book, error) {
	author, err := s.resolveAuthor(ctx, cmd.AuthorID)
	if err != nil {
		return nil, err
	}
	book := &models.Book{ID: cmd.BookID, Title: cmd.Title, ISBN: cmd.ISBN, Author: author}
	if err := s.writeRepo.Update(ctx, book); err != nil {
		return nil, authorGone(err)
	}
	s.publish(ctx, events.BookUpdated, events.BookEvent{BookID: book.ID, Title: book.Title, AuthorID: author.ID})
	return book, nil
}

func (s *BookCommandService) DeleteBook(ctx context.Context, cmd cqrs.DeleteBookCommand) error {
	if err := s.writeRepo.Delete(ctx, cmd.BookID); err != nil {
		return err
	}
	s.publish(ctx, events.BookDeleted, events.BookEvent{BookID: cmd.BookID})
	return nil
}

func (s *BookCommandService) resolveAuthor(ctx context.Context, authorID *int64) (*models.Author, error) {
	if authorID == nil {
		return nil, fmt.Errorf("book has no author: %w", apperr.ErrInvalidReference)
	}
	author, err := s.authorRepo.GetByID(ctx, *authorID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("author %d does not exist: %w", *authorID, apperr.ErrInvalidReference)
	}
	return author, err
}

func authorGone(err error) error {
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("author no longer exists: %w", apperr.ErrInvalidReference)
	}
	return err
}

func (s *BookCommandService) publish(ctx context.Context, eventType string, data events.BookEvent) {
	if err := s.publisher.Publish(ctx, events.BookEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
