package command

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/eaglebank/registry/bank-service/internal/repository"
	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/database/dbtest"
	"github.com/eaglebank/registry/shared/events"
	"github.com/eaglebank/registry/shared/redis/redistest"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedEvent struct {
	stream    string
	eventType string
	data      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, stream, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{stream: stream, eventType: eventType, data: data})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.eventType)
	}
	return types
}

type services struct {
	customers  *CustomerCommandService
	accounts   *AccountCommandService
	accountRd  *repository.AccountReadRepository
	customerRd *repository.CustomerReadRepository
	publisher  *recordingPublisher
}

func setup(t *testing.T) services {
	t.Helper()
	return setupWithRedis(t, nil)
}

// setupWithRedis wires the services with redisClient behind the customer
// read model; nil disables the cache.
func setupWithRedis(t *testing.T, redisClient *goredis.Client) services {
	t.Helper()
	db := dbtest.Open(t, repository.Schema)

	customerRead := repository.NewCustomerReadRepository(db.DB, redisClient)
	accountRead := repository.NewAccountReadRepository(db.DB)
	publisher := &recordingPublisher{}

	return services{
		customers: NewCustomerCommandService(
			repository.NewCustomerWriteRepository(db.DB), customerRead, accountRead, publisher,
		),
		accounts: NewAccountCommandService(
			repository.NewAccountWriteRepository(db.DB), customerRead, publisher,
		),
		accountRd:  accountRead,
		customerRd: customerRead,
		publisher:  publisher,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateAccount_RequiresExistingCustomer(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	_, err := s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{AccountNumber: "01000001", CustomerID: int64Ptr(42)})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	_, err = s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{AccountNumber: "01000001"})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)

	accounts, err := s.accountRd.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestCreateAccount_WithCustomer(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	customer, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotZero(t, customer.ID)

	account, err := s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{
		AccountNumber: "01123456",
		Balance:       decimal.RequireFromString("99.95"),
		CustomerID:    &customer.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, account.ID)
	assert.Equal(t, "Alice", account.Customer.Name)

	stored, err := s.accountRd.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "01123456", stored.AccountNumber)
	assert.True(t, stored.Balance.Equal(decimal.RequireFromString("99.95")), "balance %s", stored.Balance)
	assert.Equal(t, customer.ID, stored.Customer.ID)

	assert.Equal(t, []string{events.CustomerCreated, events.AccountCreated}, s.publisher.types())
}

func TestCreateAccount_GeneratesNumber(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	customer, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Bob"})
	require.NoError(t, err)

	account, err := s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{CustomerID: &customer.ID})
	require.NoError(t, err)
	assert.Regexp(t, `^01\d{6}$`, account.AccountNumber)
}

func TestUpdateAccount(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	alice, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Alice"})
	require.NoError(t, err)
	bob, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Bob"})
	require.NoError(t, err)
	account, err := s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{AccountNumber: "01000001", CustomerID: &alice.ID})
	require.NoError(t, err)

	t.Run("moves account to another customer", func(t *testing.T) {
		updated, err := s.accounts.UpdateAccount(ctx, cqrs.UpdateAccountCommand{
			AccountID: account.ID, AccountNumber: "01000002", Balance: decimal.NewFromInt(5), CustomerID: &bob.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, bob.ID, updated.Customer.ID)

		stored, err := s.accountRd.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "01000002", stored.AccountNumber)
		assert.Equal(t, "Bob", stored.Customer.Name)
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		_, err := s.accounts.UpdateAccount(ctx, cqrs.UpdateAccountCommand{
			AccountID: account.ID, AccountNumber: "01000003", CustomerID: int64Ptr(999),
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidReference)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := s.accounts.UpdateAccount(ctx, cqrs.UpdateAccountCommand{
			AccountID: 999, AccountNumber: "01000003", CustomerID: &alice.ID,
		})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestDeleteCustomer_Guard(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	customer, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Alice"})
	require.NoError(t, err)
	account, err := s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{AccountNumber: "01000001", CustomerID: &customer.ID})
	require.NoError(t, err)

	err = s.customers.DeleteCustomer(ctx, cqrs.DeleteCustomerCommand{CustomerID: customer.ID})
	assert.ErrorIs(t, err, apperr.ErrReferentialConflict)

	_, err = s.customerRd.GetByID(ctx, customer.ID)
	require.NoError(t, err, "customer must survive a refused delete")

	require.NoError(t, s.accounts.DeleteAccount(ctx, cqrs.DeleteAccountCommand{AccountID: account.ID}))
	require.NoError(t, s.customers.DeleteCustomer(ctx, cqrs.DeleteCustomerCommand{CustomerID: customer.ID}))

	_, err = s.customerRd.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.customers.DeleteCustomer(ctx, cqrs.DeleteCustomerCommand{CustomerID: 7}), apperr.ErrNotFound)
	assert.ErrorIs(t, s.accounts.DeleteAccount(ctx, cqrs.DeleteAccountCommand{AccountID: 7}), apperr.ErrNotFound)
	assert.Empty(t, s.publisher.types())
}

func TestUpdateCustomer(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	customer, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Alice", Email: "a@example.com", Phone: "1"})
	require.NoError(t, err)

	_, err = s.customers.UpdateCustomer(ctx, cqrs.UpdateCustomerCommand{CustomerID: customer.ID, Name: "Alicia"})
	require.NoError(t, err)

	stored, err := s.customerRd.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", stored.Name)
	assert.Empty(t, stored.Email, "replace clears omitted fields")

	_, err = s.customers.UpdateCustomer(ctx, cqrs.UpdateCustomerCommand{CustomerID: 999, Name: "Nobody"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteCustomer_InvalidatesCachedParent(t *testing.T) {
	mr, client := redistest.Open(t)
	s := setupWithRedis(t, client)
	ctx := context.Background()

	customer, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Alice"})
	require.NoError(t, err)
	key := "customer:view:" + strconv.FormatInt(customer.ID, 10)
	require.True(t, mr.Exists(key), "create caches the customer")

	_, err = s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{AccountNumber: "01000001", CustomerID: &customer.ID})
	require.NoError(t, err)
	accounts, err := s.accountRd.List(ctx)
	require.NoError(t, err)
	require.NoError(t, s.accounts.DeleteAccount(ctx, cqrs.DeleteAccountCommand{AccountID: accounts[0].ID}))

	require.NoError(t, s.customers.DeleteCustomer(ctx, cqrs.DeleteCustomerCommand{CustomerID: customer.ID}))
	assert.False(t, mr.Exists(key), "delete drops the cached customer")

	_, err = s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{AccountNumber: "01000002", CustomerID: &customer.ID})
	assert.ErrorIs(t, err, apperr.ErrInvalidReference)
}

func TestUpdateCustomer_RefreshesCache(t *testing.T) {
	_, client := redistest.Open(t)
	s := setupWithRedis(t, client)
	ctx := context.Background()

	customer, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Alice"})
	require.NoError(t, err)
	_, err = s.customers.UpdateCustomer(ctx, cqrs.UpdateCustomerCommand{CustomerID: customer.ID, Name: "Alicia"})
	require.NoError(t, err)

	account, err := s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{AccountNumber: "01000003", CustomerID: &customer.ID})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", account.Customer.Name)
}
