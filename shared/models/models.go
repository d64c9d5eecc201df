package models

import "github.com/shopspring/decimal"

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Account always belongs to exactly one Customer. On input only Customer.ID
// is read; on output the full customer is populated.
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Customer      *Customer       `json:"customer"`
}

type Author struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality,omitempty"`
}

// Book always belongs to exactly one Author, referenced the same way an
// Account references its Customer.
type Book struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	ISBN   string  `json:"isbn,omitempty"`
	Author *Author `json:"author"`
}

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
