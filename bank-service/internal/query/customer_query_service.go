package query

import (
	"context"
	"strings"

	"github.com/eaglebank/registry/bank-service/internal/repository"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/models"
)

type CustomerQueryService struct {
	readRepo *repository.CustomerReadRepository
}

func NewCustomerQueryService(readRepo *repository.CustomerReadRepository) *CustomerQueryService {
	return &CustomerQueryService{readRepo: readRepo}
}

func (s *CustomerQueryService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.readRepo.List(ctx)
}

func (s *CustomerQueryService) GetCustomer(ctx context.Context, q cqrs.GetCustomerQuery) (*models.Customer, error) {
	return s.readRepo.GetByID(ctx, q.CustomerID)
}

// SearchCustomers returns customers whose name equals q.Name ignoring case.
// It filters the full customer list in memory.
func (s *CustomerQueryService) SearchCustomers(ctx context.Context, q cqrs.SearchCustomersQuery) ([]models.Customer, error) {
	customers, err := s.readRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := []models.Customer{}
	for _, customer := range customers {
		if strings.EqualFold(customer.Name, q.Name) {
			matches = append(matches, customer)
		}
	}
	return matches, nil
}
