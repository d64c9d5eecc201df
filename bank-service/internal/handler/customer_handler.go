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

// CustomerCommander defines the write-side operations used by CustomerHandler.
type CustomerCommander interface {
	CreateCustomer(context.Context, cqrs.CreateCustomerCommand) (*models.Customer, error)
	UpdateCustomer(context.Context, cqrs.UpdateCustomerCommand) (*models.Customer, error)
	DeleteCustomer(context.Context, cqrs.DeleteCustomerCommand) error
}

// CustomerQuerier defines the read-side operations used by CustomerHandler.
type CustomerQuerier interface {
	ListCustomers(context.Context) ([]models.Customer, error)
	GetCustomer(context.Context, cqrs.GetCustomerQuery) (*models.Customer, error)
	SearchCustomers(context.Context, cqrs.SearchCustomersQuery) ([]models.Customer, error)
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	commands CustomerCommander
	queries  CustomerQuerier
}

type CustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

func NewCustomerHandler(commands CustomerCommander, queries CustomerQuerier) *CustomerHandler {
	return &CustomerHandler{commands: commands, queries: queries}
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.queries.ListCustomers(c.Request.Context())
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	customer, err := h.queries.GetCustomer(c.Request.Context(), cqrs.GetCustomerQuery{CustomerID: id})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Customer not found")
			return
		}
		middleware.RespondWithInternalError(c, err, "Failed to get customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	name, ok := middleware.RequiredQuery(c, "name")
	if !ok {
		return
	}
	customers, err := h.queries.SearchCustomers(c.Request.Context(), cqrs.SearchCustomersQuery{Name: name})
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to search customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	customer, err := h.commands.CreateCustomer(c.Request.Context(), cqrs.CreateCustomerCommand{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	var req CustomerRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	customer, err := h.commands.UpdateCustomer(c.Request.Context(), cqrs.UpdateCustomerCommand{
		CustomerID: id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Customer not found")
			return
		}
		middleware.RespondWithInternalError(c, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}

	err := h.commands.DeleteCustomer(c.Request.Context(), cqrs.DeleteCustomerCommand{CustomerID: id})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrReferentialConflict):
			middleware.RespondWithError(c, http.StatusBadRequest, "Cannot delete customer connected to an account")
		case errors.Is(err, apperr.ErrNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "Customer not found")
		default:
			middleware.RespondWithInternalError(c, err, "Failed to delete customer")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
