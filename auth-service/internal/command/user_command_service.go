package command

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/eaglebank/registry/auth-service/internal/repository"
	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/events"
	"github.com/eaglebank/registry/shared/models"
	"github.com/eaglebank/registry/shared/utils"
)

// EventPublisher is satisfied by *events.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// UserCommandService registers users. Passwords are stored only as bcrypt
// hashes and registration never issues a token.
type UserCommandService struct {
	repo      *repository.UserRepository
	publisher EventPublisher
}

func NewUserCommandService(repo *repository.UserRepository, publisher EventPublisher) *UserCommandService {
	return &UserCommandService{repo: repo, publisher: publisher}
}

func (s *UserCommandService) RegisterUser(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error) {
	_, err := s.repo.GetByUsername(ctx, cmd.Username)
	if err == nil {
		return nil, fmt.Errorf("username %q: %w", cmd.Username, apperr.ErrUsernameExists)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{Username: cmd.Username, PasswordHash: passwordHash}
	// The unique constraint still catches a concurrent registration.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID:   user.ID,
		Username: user.Username,
	}); err != nil {
		log.Printf("Failed to publish %s event: %v", events.UserRegistered, err)
	}
	return user, nil
}
