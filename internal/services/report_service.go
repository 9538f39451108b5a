package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "comptable/internal/errors"
	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/repository"
)

// reportService derives balances and chart data. Nothing is cached: every
// call reloads the operations, so a read always observes earlier writes.
type reportService struct {
	operations *repository.Store[models.Operation]
	categories *repository.Store[models.Category]
	accounts   AccountServicer
	loc        *time.Location
}

// NewReportService creates a new ReportServicer. Periods are read on the
// calendar of loc, the same one the operation listing filters in; nil means
// UTC.
func NewReportService(db *gorm.DB, accounts AccountServicer, loc *time.Location) ReportServicer {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{
		operations: repository.NewStore[models.Operation](db, apperrors.ErrOperationNotFound),
		categories: repository.NewStore[models.Category](db, apperrors.ErrCategoryNotFound),
		accounts:   accounts,
		loc:        loc,
	}
}

// AccountSummaries returns one chart datum per account of the user. A nil
// period covers every operation.
func (s *reportService) AccountSummaries(userID uint, period *ledger.Period) ([]ledger.AccountSummary, error) {
	accounts, err := s.accounts.ListAccounts(userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return []ledger.AccountSummary{}, nil
	}

	ids := make([]uint, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID
	}
	ops, err := s.operations.Find(repository.In(models.ColOperationAccount, ids))
	if err != nil {
		return nil, err
	}
	return ledger.SummarizeAll(accounts, ops, period, s.loc), nil
}

// AccountBalance returns the signed balance of one account.
func (s *reportService) AccountBalance(userID, accountID uint, period *ledger.Period) (decimal.Decimal, error) {
	ops, err := s.accountOperations(userID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if period != nil {
		return ledger.BalanceForPeriod(ops, *period, s.loc), nil
	}
	return ledger.Balance(ops), nil
}

// CategoryBreakdown returns the signed total per category name for one
// account.
func (s *reportService) CategoryBreakdown(userID, accountID uint, period *ledger.Period) (map[string]decimal.Decimal, error) {
	ops, err := s.accountOperations(userID, accountID)
	if err != nil {
		return nil, err
	}
	if period != nil {
		ops = ledger.InPeriod(ops, *period, s.loc)
	}

	categories, err := s.categories.Find()
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return ledger.BalanceByCategory(ops, names), nil
}

func (s *reportService) accountOperations(userID, accountID uint) ([]models.Operation, error) {
	if _, err := s.accounts.GetAccount(userID, accountID); err != nil {
		return nil, err
	}
	return s.operations.Find(repository.Eq(models.ColOperationAccount, accountID))
}
