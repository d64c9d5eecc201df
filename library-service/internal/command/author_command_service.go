package command

import (
	"context"
	"fmt"
	"log"

	"github.com/eaglebank/registry/library-service/internal/repository"
	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/events"
	"github.com/eaglebank/registry/shared/models"
)

type AuthorCommandService struct {
	writeRepo *repository.AuthorWriteRepository
	readRepo  *repository.AuthorReadRepository
	bookRepo  *repository.BookReadRepository
	publisher EventPublisher
}

func NewAuthorCommandService(
	writeRepo *repository.AuthorWriteRepository,
	readRepo *repository.AuthorReadRepository,
	bookRepo *repository.BookReadRepository,
	publisher EventPublisher,
) *AuthorCommandService {
	return &AuthorCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		bookRepo:  bookRepo,
		publisher: publisher,
	}
}

func (s *AuthorCommandService) CreateAuthor(ctx context.Context, cmd cqrs.CreateAuthorCommand) (*models.Author, error) {
	author := &models.Author{Name: cmd.Name, Nationality: cmd.Nationality}
	if err := s.writeRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	s.readRepo.CacheAuthor(ctx, author)
	s.publish(ctx, events.AuthorCreated, events.AuthorEvent{AuthorID: author.ID, Name: author.Name})
	return author, nil
}

func (s *AuthorCommandService) UpdateAuthor(ctx context.Context, cmd cqrs.UpdateAuthorCommand) (*models.Author, error) {
	author := &models.Author{ID: cmd.AuthorID, Name: cmd.Name, Nationality: cmd.Nationality}
	if err := s.writeRepo.Update(ctx, author); err != nil {
		return nil, err
	}
	s.readRepo.CacheAuthor(ctx, author)
	s.publish(ctx, events.AuthorUpdated, events.AuthorEvent{AuthorID: author.ID, Name: author.Name})
	return author, nil
}

// DeleteAuthor fails with ErrReferentialConflict while any book names the
// author.
func (s *AuthorCommandService) DeleteAuthor(ctx context.Context, cmd cqrs.DeleteAuthorCommand) error {
	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, book := range books {
		if book.Author != nil && book.Author.ID == cmd.AuthorID {
			return fmt.Errorf("author %d wrote book %d: %w", cmd.AuthorID, book.ID, apperr.ErrReferentialConflict)
		}
	}

	if err := s.writeRepo.Delete(ctx, cmd.AuthorID); err != nil {
		return err
	}
	s.readRepo.InvalidateAuthor(ctx, cmd.AuthorID)
	s.publish(ctx, events.AuthorDeleted, events.AuthorEvent{AuthorID: cmd.AuthorID})
	return nil
}

func (s *AuthorCommandService) publish(ctx context.Context, eventType string, data events.AuthorEvent) {
	if err := s.publisher.Publish(ctx, events.AuthorEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
