package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/registry/auth-service/internal/repository"
	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/middleware"
	"github.com/eaglebank/registry/shared/models"
	"github.com/eaglebank/registry/shared/utils"
	"github.com/golang-jwt/jwt/v5"
)

// AuthQueryService handles login, token refresh and current-user lookups.
// None of these mutate application state.
type AuthQueryService struct {
	userRepo *repository.UserRepository
	secret   []byte
	ttl      time.Duration
}

func NewAuthQueryService(userRepo *repository.UserRepository, secret []byte, ttl time.Duration) *AuthQueryService {
	return &AuthQueryService{userRepo: userRepo, secret: secret, ttl: ttl}
}

func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, cmd.Username)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return "", apperr.ErrInvalidCredentials
	}
	return s.generateToken(user.ID, user.Username)
}

func (s *AuthQueryService) RefreshToken(ctx context.Context, cmd cqrs.RefreshTokenCommand) (string, error) {
	claims, err := middleware.ParseToken(s.secret, cmd.Token)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, apperr.ErrInvalidCredentials)
	}
	// Deleted users cannot keep refreshing.
	if _, err := s.userRepo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", err
	}
	return s.generateToken(claims.UserID, claims.Username)
}

func (s *AuthQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	return s.userRepo.GetByID(ctx, q.UserID)
}

func (s *AuthQueryService) generateToken(userID int64, username string) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}
