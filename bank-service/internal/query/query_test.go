package query

import (
	"context"
	"testing"

	"github.com/eaglebank/registry/bank-service/internal/repository"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/database"
	"github.com/eaglebank/registry/shared/database/dbtest"
	"github.com/eaglebank/registry/shared/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, db *database.DB, names []string, numbers []string) {
	t.Helper()
	ctx := context.Background()
	customers := repository.NewCustomerWriteRepository(db.DB)
	accounts := repository.NewAccountWriteRepository(db.DB)

	var owner *models.Customer
	for _, name := range names {
		c := &models.Customer{Name: name}
		require.NoError(t, customers.Create(ctx, c))
		if owner == nil {
			owner = c
		}
	}
	for _, number := range numbers {
		require.NoError(t, accounts.Create(ctx, &models.Account{AccountNumber: number, Balance: decimal.Zero, Customer: owner}))
	}
}

func TestSearchCustomers_ExactIgnoringCase(t *testing.T) {
	db := dbtest.Open(t, repository.Schema)
	seed(t, db, []string{"alice", "Alicia", "ALICE", "Bob"}, nil)
	svc := NewCustomerQueryService(repository.NewCustomerReadRepository(db.DB, nil))

	got, err := svc.SearchCustomers(context.Background(), cqrs.SearchCustomersQuery{Name: "Alice"})
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"alice", "ALICE"}, names)
}

func TestSearchCustomers_NoMatchIsEmpty(t *testing.T) {
	db := dbtest.Open(t, repository.Schema)
	seed(t, db, []string{"Bob"}, nil)
	svc := NewCustomerQueryService(repository.NewCustomerReadRepository(db.DB, nil))

	got, err := svc.SearchCustomers(context.Background(), cqrs.SearchCustomersQuery{Name: "Alice"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchAccounts_SubstringIgnoringCase(t *testing.T) {
	db := dbtest.Open(t, repository.Schema)
	seed(t, db, []string{"Alice"}, []string{"01123456", "AB123CD", "ab-999", "01999999"})
	svc := NewAccountQueryService(repository.NewAccountReadRepository(db.DB))

	got, err := svc.SearchAccounts(context.Background(), cqrs.SearchAccountsQuery{AccountNumber: "123"})
	require.NoError(t, err)
	numbers := make([]string, 0, len(got))
	for _, a := range got {
		numbers = append(numbers, a.AccountNumber)
	}
	assert.Equal(t, []string{"01123456", "AB123CD"}, numbers)

	got, err = svc.SearchAccounts(context.Background(), cqrs.SearchAccountsQuery{AccountNumber: "ab"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetAccount_PopulatesCustomer(t *testing.T) {
	db := dbtest.Open(t, repository.Schema)
	seed(t, db, []string{"Alice"}, []string{"01000001"})
	svc := NewAccountQueryService(repository.NewAccountReadRepository(db.DB))

	accounts, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	account, err := svc.GetAccount(context.Background(), cqrs.GetAccountQuery{AccountID: accounts[0].ID})
	require.NoError(t, err)
	require.NotNil(t, account.Customer)
	assert.Equal(t, "Alice", account.Customer.Name)
}

func TestListCustomers_Empty(t *testing.T) {
	db := dbtest.Open(t, repository.Schema)
	svc := NewCustomerQueryService(repository.NewCustomerReadRepository(db.DB, nil))

	got, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
