package cqrs

// ---------- Bank queries ----------

type GetCustomerQuery struct {
	CustomerID int64
}

// SearchCustomersQuery matches customers whose name equals Name, ignoring case.
type SearchCustomersQuery struct {
	Name string
}

type GetAccountQuery struct {
	AccountID int64
}

// SearchAccountsQuery matches accounts whose number contains AccountNumber,
// ignoring case.
type SearchAccountsQuery struct {
	AccountNumber string
}

// ---------- Library queries ----------

type GetAuthorQuery struct {
	AuthorID int64
}

// SearchAuthorsQuery matches authors whose name equals Name, ignoring case.
type SearchAuthorsQuery struct {
	Name string
}

type GetBookQuery struct {
	BookID int64
}

// SearchBooksQuery matches books whose title contains Title, ignoring case.
type SearchBooksQuery struct {
	Title string
}

// ---------- User queries ----------

type GetUserQuery struct {
	UserID int64
}
