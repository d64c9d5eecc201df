package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/middleware"
	"github.com/eaglebank/registry/shared/models"
	"github.com/gin-gonic/gin"
)

// UserCommander defines the write-side operations used by AuthHandler.
type UserCommander interface {
	RegisterUser(context.Context, cqrs.RegisterUserCommand) (*models.User, error)
}

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(context.Context, cqrs.LoginCommand) (string, error)
	RefreshToken(context.Context, cqrs.RefreshTokenCommand) (string, error)
	GetUser(context.Context, cqrs.GetUserQuery) (*models.User, error)
}

// AuthHandler handles registration, login, token refresh and /me.
type AuthHandler struct {
	commands UserCommander
	queries  AuthQuerier
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(commands UserCommander, queries AuthQuerier) *AuthHandler {
	return &AuthHandler{commands: commands, queries: queries}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	_, err := h.commands.RegisterUser(c.Request.Context(), cqrs.RegisterUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrUsernameExists) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Username already exists")
			return
		}
		middleware.RespondWithInternalError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	token, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.respondWithTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	token, err := h.queries.RefreshToken(c.Request.Context(), cqrs.RefreshTokenCommand{Token: req.Token})
	if err != nil {
		h.respondWithTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

// Me returns the user named by the bearer token. It must run behind
// middleware.AuthMiddleware.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.queries.GetUser(c.Request.Context(), cqrs.GetUserQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		middleware.RespondWithInternalError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) respondWithTokenError(c *gin.Context, err error) {
	if errors.Is(err, apperr.ErrInvalidCredentials) {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	middleware.RespondWithInternalError(c, err, "Failed to issue token")
}
