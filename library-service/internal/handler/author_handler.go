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

type AuthorCommander interface {
	CreateAuthor(context.Context, cqrs.CreateAuthorCommand) (*models.Author, error)
	UpdateAuthor(context.Context, cqrs.UpdateAuthorCommand) (*models.Author, error)
	DeleteAuthor(context.Context, cqrs.DeleteAuthorCommand) error
}

type AuthorQuerier interface {
	ListAuthors(context.Context) ([]models.Author, error)
	GetAuthor(context.Context, cqrs.GetAuthorQuery) (*models.Author, error)
	SearchAuthors(context.Context, cqrs.SearchAuthorsQuery) ([]models.Author, error)
}

type AuthorHandler struct {
	commands AuthorCommander
	queries  AuthorQuerier
}

type AuthorRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Nationality string `json:"nationality" validate:"omitempty,max=100"`
}

func NewAuthorHandler(commands AuthorCommander, queries AuthorQuerier) *AuthorHandler {
	return &AuthorHandler{commands: commands, queries: queries}
}

func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.queries.ListAuthors(c.Request.Context())
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to list authors")
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	author, err := h.queries.GetAuthor(c.Request.Context(), cqrs.GetAuthorQuery{AuthorID: id})
	if err != nil {
		h.respondWithError(c, err, "Failed to get author")
		return
	}
	c.JSON(http.StatusOK, author)
}

func (h *AuthorHandler) SearchAuthors(c *gin.Context) {
	name, ok := middleware.RequiredQuery(c, "name")
	if !ok {
		return
	}
	authors, err := h.queries.SearchAuthors(c.Request.Context(), cqrs.SearchAuthorsQuery{Name: name})
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to search authors")
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req AuthorRequest
	if !middleware.BindJSON(c, &req) {
		return
	}
	author, err := h.commands.CreateAuthor(c.Request.Context(), cqrs.CreateAuthorCommand{
		Name:        req.Name,
		Nationality: req.Nationality,
	})
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to create author")
		return
	}
	c.JSON(http.StatusCreated, author)
}

func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	var req AuthorRequest
	if !middleware.BindJSON(c, &req) {
		return
	}
	author, err := h.commands.UpdateAuthor(c.Request.Context(), cqrs.UpdateAuthorCommand{
		AuthorID:    id,
		Name:        req.Name,
		Nationality: req.Nationality,
	})
	if err != nil {
		h.respondWithError(c, err, "Failed to update author")
		return
	}
	c.JSON(http.StatusOK, author)
}

func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	if err := h.commands.DeleteAuthor(c.Request.Context(), cqrs.DeleteAuthorCommand{AuthorID: id}); err != nil {
		h.respondWithError(c, err, "Failed to delete author")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthorHandler) respondWithError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrReferentialConflict):
		middleware.RespondWithError(c, http.StatusBadRequest, "Cannot delete author connected to a book")
	case errors.Is(err, apperr.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Author not found")
	default:
		middleware.RespondWithInternalError(c, err, fallback)
	}
}
