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
	"github.com/shopspring/decimal"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (*models.Account, error)
	UpdateAccount(context.Context, cqrs.UpdateAccountCommand) (*models.Account, error)
	DeleteAccount(context.Context, cqrs.DeleteAccountCommand) error
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	ListAccounts(context.Context) ([]models.Account, error)
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.Account, error)
	SearchAccounts(context.Context, cqrs.SearchAccountsQuery) ([]models.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// CustomerReference is the embedded parent reference of an account body:
// {"customer": {"id": 1}}.
type CustomerReference struct {
	ID *int64 `json:"id"`
}

type AccountRequest struct {
	AccountNumber string             `json:"accountNumber" validate:"omitempty,max=34"`
	Balance       decimal.Decimal    `json:"balance"`
	Customer      *CustomerReference `json:"customer"`
}

func (r AccountRequest) customerID() *int64 {
	if r.Customer == nil {
		return nil
	}
	return r.Customer.ID
}

// balanceScale matches the NUMERIC(19,2) column balances are stored in.
const balanceScale = 2

func (r AccountRequest) balanceErrors() []middleware.ValidationError {
	if r.Balance.Equal(r.Balance.Round(balanceScale)) {
		return nil
	}
	return []middleware.ValidationError{{
		Field: "Balance", Message: "Value must have at most 2 decimal places", Type: "scale",
	}}
}

const missingCustomerMessage = "Customer must exist to add an account"

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.queries.ListAccounts(c.Request.Context())
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	account, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{AccountID: id})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		middleware.RespondWithInternalError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) SearchAccounts(c *gin.Context) {
	number, ok := middleware.RequiredQuery(c, "accountNumber")
	if !ok {
		return
	}
	accounts, err := h.queries.SearchAccounts(c.Request.Context(), cqrs.SearchAccountsQuery{AccountNumber: number})
	if err != nil {
		middleware.RespondWithInternalError(c, err, "Failed to search accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req AccountRequest
	if !middleware.BindJSON(c, &req) {
		return
	}
	if errs := req.balanceErrors(); errs != nil {
		middleware.RespondWithValidationError(c, errs)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		AccountNumber: req.AccountNumber,
		Balance:       req.Balance,
		CustomerID:    req.customerID(),
	})
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidReference) {
			middleware.RespondWithError(c, http.StatusBadRequest, missingCustomerMessage)
			return
		}
		middleware.RespondWithInternalError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}
	var req AccountRequest
	if !middleware.BindJSON(c, &req) {
		return
	}
	if req.AccountNumber == "" {
		middleware.RespondWithValidationError(c, []middleware.ValidationError{{
			Field: "AccountNumber", Message: "This field is required", Type: "required",
		}})
		return
	}
	if errs := req.balanceErrors(); errs != nil {
		middleware.RespondWithValidationError(c, errs)
		return
	}

	account, err := h.commands.UpdateAccount(c.Request.Context(), cqrs.UpdateAccountCommand{
		AccountID:     id,
		AccountNumber: req.AccountNumber,
		Balance:       req.Balance,
		CustomerID:    req.customerID(),
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidReference):
			middleware.RespondWithError(c, http.StatusBadRequest, missingCustomerMessage)
		case errors.Is(err, apperr.ErrNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
		default:
			middleware.RespondWithInternalError(c, err, "Failed to update account")
		}
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := middleware.PathID(c)
	if !ok {
		return
	}

	if err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{AccountID: id}); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
			return
		}
		middleware.RespondWithInternalError(c, err, "Failed to delete account")
		return
	}

	c.Status(http.StatusNoContent)
}
