package events

import "time"

// Event types
const (
	CustomerCreated = "customer.created"
	CustomerUpdated = "customer.updated"
	CustomerDeleted = "customer.deleted"

	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	AuthorCreated = "author.created"
	AuthorUpdated = "author.updated"
	AuthorDeleted = "author.deleted"

	BookCreated = "book.created"
	BookUpdated = "book.updated"
	BookDeleted = "book.deleted"

	UserRegistered = "user.registered"
)

// Stream names
const (
	CustomerEventsStream = "customer.events"
	AccountEventsStream  = "account.events"
	AuthorEventsStream   = "author.events"
	BookEventsStream     = "book.events"
	UserEventsStream     = "user.events"
)

// Base event structure
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Bank events
type CustomerEvent struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name,omitempty"`
}

type AccountEvent struct {
	AccountID     int64  `json:"accountId"`
	AccountNumber string `json:"accountNumber,omitempty"`
	CustomerID    int64  `json:"customerId,omitempty"`
	Balance       string `json:"balance,omitempty"`
}

// Library events
type AuthorEvent struct {
	AuthorID int64  `json:"authorId"`
	Name     string `json:"name,omitempty"`
}

type BookEvent struct {
	BookID   int64  `json:"bookId"`
	Title    string `json:"title,omitempty"`
	AuthorID int64  `json:"authorId,omitempty"`
}

// User events
type UserRegisteredEvent struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
