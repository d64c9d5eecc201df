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

type BookCommander interface {
	CreateBook(context.Context, cqrs.CreateBookCommand) (*models.Book, error)
	UpdateBook(context.Context, cqrs.UpdateBookCommand) (*models.Book, error)
	DeleteBook(context.Context, cqrs.DeleteBookCommand) error
}

type BookQuerier interface {
	ListBooks(context.Context) ([]models.Book, error)
	GetBook(context.Context, cqrs.GetBookQuery) (*models.Book, error)
	SearchBooks(context.Context, cqrs.SearchBooksQuery) ([]models.Book, error)
}

type BookHandler struct {
	commands BookCommander
	queries  BookQuerier
}

type AuthorReference struct {
	ID *int64 `json:"id"`
}

// BookRequest is the body of POST and PUT. The author is referenced by id:
// {"title": "Dune", "author": {"id": 1}}.
type BookRequest struct {
	Title  string           `json:"title" validate:"required,max=255"`
	ISBN   string           `json:"isbn" validate:"omitempty,max=20"`
	Author *AuthorReference `json:"author"`
}

func (r BookRequest) authorID() *int64 {
	if r.Author == nil {
		return nil
	}
	return r.Author.ID
}

func NewBookHandler(commands BookCommander, queries BookQuerier) *BookHandler {
	return &BookHandler{commands: commands, queries: queries}
}

func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.queries.ListBooks(c.Request.Context())
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	book, err := h.queries.GetBook(c.Request.Context(), cqrs.GetBookQuery{BookID: id})
	if err != nil {
		h.respondWithError(c, err, "Failed to get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) SearchBooks(c *gin.Context) {
	title, ok := middleware.RequiredQuery(c, "title")
	if !ok {
		return
	}
	books, err := h.queries.SearchBooks(c.Request.Context(), cqrs.SearchBooksQuery{Title: title})
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to search books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req BookRequest
	if !middleware.BindJSON(c, &req) {
		return
	}
	book, err := h.commands.CreateBook(c.Request.Context(), cqrs.CreateBookCommand{
		Title:    req.Title,
		ISBN:     req.ISBN,
		AuthorID: req.authorID(),
	})
	if err != nil {
		h.respondWithError(c, err, "Failed to create book")
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	var req BookRequest
	if !middleware.BindJSON(c, &req) {
		return
	}
	book, err := h.commands.UpdateBook(c.Request.Context(), cqrs.UpdateBookCommand{
		BookID:   id,
		Title:    req.Title,
		ISBN:     req.ISBN,
		AuthorID: req.authorID(),
	})
	if err != nil {
		h.respondWithError(c, err, "Failed to update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	if err := h.commands.DeleteBook(c.Request.Context(), cqrs.DeleteBookCommand{BookID: id}); err != nil {
		h.respondWithError(c, err, "Failed to delete book")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookHandler) respondWithError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidReference):
		middleware.RespondWithError(c, http.StatusBadRequest, "Author must exist to add a book")
	case errors.Is(err, apperr.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Book not found")
	default:
		middleware.RespondWithInternalError(c, err, fallback)
	}
}
