package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
	"comptable/internal/models"
	"comptable/internal/repository"
)

// operationService handles operation-related business logic.
type operationService struct {
	operations *repository.Store[models.Operation]
	categories *repository.Store[models.Category]
	accounts   AccountServicer
	loc        *time.Location
}

// NewOperationService creates a new OperationServicer. Period filters are
// evaluated in loc; nil means UTC.
func NewOperationService(db *gorm.DB, accounts AccountServicer, loc *time.Location) OperationServicer {
	if loc == nil {
		loc = time.UTC
	}
	return &operationService{
		operations: repository.NewStore[models.Operation](db, apperrors.ErrOperationNotFound),
		categories: repository.NewStore[models.Category](db, apperrors.ErrCategoryNotFound),
		accounts:   accounts,
		loc:        loc,
	}
}

// ListOperations returns the operations of one of the user's accounts,
// newest first.
func (s *operationService) ListOperations(userID, accountID uint, filter OperationFilter) ([]models.Operation, error) {
	if _, err := s.accounts.GetAccount(userID, accountID); err != nil {
		return nil, err
	}

	scopes := []repository.Scope{repository.Eq(models.ColOperationAccount, accountID)}
	if filter.Period != nil {
		from, to := filter.Period.Bounds(s.loc)
		scopes = append(scopes, repository.Between(models.ColOperationDate, from.UTC(), to.UTC()))
	}
	if filter.CategoryID != nil {
		scopes = append(scopes, repository.Eq(models.ColOperationCategory, *filter.CategoryID))
	}
	scopes = append(scopes,
		repository.OrderBy(models.ColOperationDate, true),
		repository.OrderBy(models.ColOperationID, true),
	)
	return s.operations.Find(scopes...)
}

// GetOperation returns an operation recorded on one of the user's accounts.
func (s *operationService) GetOperation(userID, operationID uint) (*models.Operation, error) {
	op, err := s.operations.Get(operationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetAccount(userID, op.AccountID); err != nil {
		return nil, apperrors.ErrOperationNotFound
	}
	return op, nil
}

// CreateOperation records a new operation.
func (s *operationService) CreateOperation(userID uint, input OperationInput) (*models.Operation, error) {
	if err := s.validate(userID, input); err != nil {
		return nil, err
	}

	op := &models.Operation{}
	applyInput(op, input)
	if err := s.operations.Create(op); err != nil {
		return nil, err
	}

	logger.Named("operations").Infow("operation created",
		"user_id", userID, "account_id", op.AccountID, "operation_id", op.ID)
	return op, nil
}

// UpdateOperation replaces every editable field of an operation. The
// operation may be moved to another account of the same user.
func (s *operationService) UpdateOperation(userID, operationID uint, input OperationInput) (*models.Operation, error) {
	op, err := s.GetOperation(userID, operationID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(userID, input); err != nil {
		return nil, err
	}

	applyInput(op, input)
	if err := s.operations.Save(op); err != nil {
		return nil, err
	}
	return op, nil
}

// DeleteOperation removes an operation.
func (s *operationService) DeleteOperation(userID, operationID uint) error {
	if _, err := s.GetOperation(userID, operationID); err != nil {
		return err
	}
	if err := s.operations.DeleteByID(operationID); err != nil {
		return err
	}
	logger.Named("operations").Infow("operation deleted", "user_id", userID, "operation_id", operationID)
	return nil
}

func (s *operationService) validate(userID uint, input OperationInput) error {
	if input.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if input.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if len(input.Comment) > 255 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "comment is too long")
	}
	if _, err := s.accounts.GetAccount(userID, input.AccountID); err != nil {
		return err
	}
	if _, err := s.categories.Get(input.CategoryID); err != nil {
		return err
	}
	return nil
}

func applyInput(op *models.Operation, input OperationInput) {
	op.AccountID = input.AccountID
	op.CategoryID = input.CategoryID
	op.Amount = input.Amount.Round(2)
	op.IsCredit = input.IsCredit
	op.Date = input.Date.UTC()
	op.Comment = strings.TrimSpace(input.Comment)
}
