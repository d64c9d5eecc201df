package cqrs

import "github.com/shopspring/decimal"

// ---------- Bank commands ----------

type CreateCustomerCommand struct {
	Name  string
	Email string
	Phone string
}

// UpdateCustomerCommand replaces every field of an existing customer.
type UpdateCustomerCommand struct {
	CustomerID int64
	Name       string
	Email      string
	Phone      string
}

type DeleteCustomerCommand struct {
	CustomerID int64
}

// CreateAccountCommand carries the parent reference as a pointer so an
// absent reference can be told apart from id 0.
type CreateAccountCommand struct {
	AccountNumber string
	Balance       decimal.Decimal
	CustomerID    *int64
}

type UpdateAccountCommand struct {
	AccountID     int64
	AccountNumber string
	Balance       decimal.Decimal
	CustomerID    *int64
}

type DeleteAccountCommand struct {
	AccountID int64
}

// ---------- Library commands ----------

type CreateAuthorCommand struct {
	Name        string
	Nationality string
}

type UpdateAuthorCommand struct {
	AuthorID    int64
	Name        string
	Nationality string
}

type DeleteAuthorCommand struct {
	AuthorID int64
}

type CreateBookCommand struct {
	Title    string
	ISBN     string
	AuthorID *int64
}

type UpdateBookCommand struct {
	BookID   int64
	Title    string
	ISBN     string
	AuthorID *int64
}

type DeleteBookCommand struct {
	BookID int64
}

// ---------- User commands ----------

type RegisterUserCommand struct {
	Username string
	Password string
}

type LoginCommand struct {
	Username string
	Password string
}

// RefreshTokenCommand exchanges a valid token for a fresh one.
type RefreshTokenCommand struct {
	Token string
}
