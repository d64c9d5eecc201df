package command

import (
	"context"
	"fmt"
	"log"

	"github.com/eaglebank/registry/bank-service/internal/repository"
	"github.com/eaglebank/registry/shared/apperr"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/events"
	"github.com/eaglebank/registry/shared/models"
)

// CustomerCommandService writes customer state and keeps the cached copy in sync.
type CustomerCommandService struct {
	writeRepo   *repository.CustomerWriteRepository
	readRepo    *repository.CustomerReadRepository
	accountRepo *repository.AccountReadRepository
	publisher   EventPublisher
}

func NewCustomerCommandService(
	writeRepo *repository.CustomerWriteRepository,
	readRepo *repository.CustomerReadRepository,
	accountRepo *repository.AccountReadRepository,
	publisher EventPublisher,
) *CustomerCommandService {
	return &CustomerCommandService{
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

func (s *CustomerCommandService) CreateCustomer(ctx context.Context, cmd cqrs.CreateCustomerCommand) (*models.Customer, error) {
	customer := &models.Customer{
		Name:  cmd.Name,
		Email: cmd.Email,
		Phone: cmd.Phone,
	}
	if err := s.writeRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	s.readRepo.CacheCustomer(ctx, customer)
	s.publish(ctx, events.CustomerCreated, customer)
	return customer, nil
}

func (s *CustomerCommandService) UpdateCustomer(ctx context.Context, cmd cqrs.UpdateCustomerCommand) (*models.Customer, error) {
	customer := &models.Customer{
		ID:    cmd.CustomerID,
		Name:  cmd.Name,
		Email: cmd.Email,
		Phone: cmd.Phone,
	}
	if err := s.writeRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	s.readRepo.CacheCustomer(ctx, customer)
	s.publish(ctx, events.CustomerUpdated, customer)
	return customer, nil
}

// DeleteCustomer refuses to delete a customer that still owns an account.
// The check scans every account.
func (s *CustomerCommandService) DeleteCustomer(ctx context.Context, cmd cqrs.DeleteCustomerCommand) error {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		if account.Customer != nil && account.Customer.ID == cmd.CustomerID {
			return fmt.Errorf("customer %d owns account %d: %w", cmd.CustomerID, account.ID, apperr.ErrReferentialConflict)
		}
	}

	if err := s.writeRepo.Delete(ctx, cmd.CustomerID); err != nil {
		return err
	}
	s.readRepo.InvalidateCustomer(ctx, cmd.CustomerID)
	s.publish(ctx, events.CustomerDeleted, &models.Customer{ID: cmd.CustomerID})
	return nil
}

func (s *CustomerCommandService) publish(ctx context.Context, eventType string, customer *models.Customer) {
	if err := s.publisher.Publish(ctx, events.CustomerEventsStream, eventType, events.CustomerEvent{
		CustomerID: customer.ID,
		Name:       customer.Name,
	}); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
