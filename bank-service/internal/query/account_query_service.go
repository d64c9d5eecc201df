package query

import (
	"context"

	"github.com/eaglebank/registry/bank-service/internal/repository"
	"github.com/eaglebank/registry/shared/cqrs"
	"github.com/eaglebank/registry/shared/models"
	"github.com/eaglebank/registry/shared/utils"
)

type AccountQueryService struct {
	readRepo *repository.AccountReadRepository
}

func NewAccountQueryService(readRepo *repository.AccountReadRepository) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

func (s *AccountQueryService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.readRepo.List(ctx)
}

func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.Account, error) {
	return s.readRepo.GetByID(ctx, q.AccountID)
}

// SearchAccounts returns accounts whose number contains q.AccountNumber,
// ignoring case.
func (s *AccountQueryService) SearchAccounts(ctx context.Context, q cqrs.SearchAccountsQuery) ([]models.Account, error) {
	accounts, err := s.readRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := []models.Account{}
	for _, account := range accounts {
		if utils.ContainsFold(account.AccountNumber, q.AccountNumber) {
			matches = append(matches, account)
		}
	}
	return matches, nil
}
