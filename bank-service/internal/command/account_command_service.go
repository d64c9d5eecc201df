package command

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/eaglebank/registry/bank-service/internal/repository"
	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/database"
	"github.com/eaglebank/registry/shared/events"
	"github.com/eaglebank/registry/shared/models"
	"github.com/eaglebank/registry/shared/utils"
)

// AccountCommandService writes accounts. Every write first resolves the
// owning customer; an account is never stored without one.
type AccountCommandService struct {
	writeRepo    *repository.AccountWriteRepository
	customerRepo *repository.CustomerReadRepository
	publisher    EventPublisher
}

func NewAccountCommandService(
	writeRepo *repository.AccountWriteRepository,
	customerRepo *repository.CustomerReadRepository,
	publisher EventPublisher,
) *AccountCommandService {
	return &AccountCommandService{
		writeRepo:    writeRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	customer, err := s.resolveCustomer(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	number := cmd.AccountNumber
	if number == "" {
		number = utils.GenerateAccountNumber()
	}
	account := &models.Account{
		AccountNumber: number,
		Balance:       cmd.Balance,
		Customer:      customer,
	}
	if err := s.writeRepo.Create(ctx, account); err != nil {
		return nil, referenceError(err)
	}
	s.publish(ctx, events.AccountCreated, accountEvent(account))
	return account, nil
}

// UpdateAccount replaces an account, including its owner.
func (s *AccountCommandService) UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.Account, error) {
	customer, err := s.resolveCustomer(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	account := &models.Account{
		ID:            cmd.AccountID,
		AccountNumber: cmd.AccountNumber,
		Balance:       cmd.Balance,
		Customer:      customer,
	}
	if err := s.writeRepo.Update(ctx, account); err != nil {
		return nil, referenceError(err)
	}
	s.publish(ctx, events.AccountUpdated, accountEvent(account))
	return account, nil
}

func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error {
	if err := s.writeRepo.Delete(ctx, cmd.AccountID); err != nil {
		return err
	}
	s.publish(ctx, events.AccountDeleted, events.AccountEvent{AccountID: cmd.AccountID})
	return nil
}

func (s *AccountCommandService) resolveCustomer(ctx context.Context, customerID *int64) (*models.Customer, error) {
	if customerID == nil {
		return nil, fmt.Errorf("account has no customer: %w", apperr.ErrInvalidReference)
	}
	customer, err := s.customerRepo.GetByID(ctx, *customerID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("customer %d does not exist: %w", *customerID, apperr.ErrInvalidReference)
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// referenceError maps a foreign-key failure (customer deleted between the
// lookup and the write) onto the same error as a missing customer.
func referenceError(err error) error {
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("customer no longer exists: %w", apperr.ErrInvalidReference)
	}
	return err
}

func accountEvent(account *models.Account) events.AccountEvent {
	return events.AccountEvent{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		CustomerID:    account.Customer.ID,
		Balance:       account.Balance.String(),
	}
}

func (s *AccountCommandService) publish(ctx context.Context, eventType string, data events.AccountEvent) {
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
