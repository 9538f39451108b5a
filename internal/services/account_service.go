package services

import (
	"strings"

	"gorm.io/gorm"

	"comptable/internal/database"
	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
	"comptable/internal/models"
	"comptable/internal/repository"
)

// accountService handles account-related business logic.
type accountService struct {
	db             *gorm.DB
	accounts       *repository.Store[models.Account]
	establishments *repository.Store[models.Establishment]
	accountTypes   *repository.Store[models.AccountType]
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{
		db:             db,
		accounts:       repository.NewStore[models.Account](db, apperrors.ErrAccountNotFound),
		establishments: repository.NewStore[models.Establishment](db, apperrors.ErrEstablishmentNotFound),
		accountTypes:   repository.NewStore[models.AccountType](db, apperrors.ErrAccountTypeNotFound),
	}
}

var accountAssociations = repository.Preload("Establishment", "AccountType")

// ListAccounts returns the user's accounts with their establishment and type.
func (s *accountService) ListAccounts(userID uint) ([]models.Account, error) {
	return s.accounts.Find(
		accountAssociations,
		repository.Eq(models.ColAccountUser, userID),
		repository.OrderBy(models.ColAccountID, false),
	)
}

// GetAccount returns one of the user's accounts. Accounts owned by someone
// else are reported as not found.
func (s *accountService) GetAccount(userID, accountID uint) (*models.Account, error) {
	account, err := s.accounts.Get(accountID, accountAssociations)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

// CreateAccount opens a new account for the user.
func (s *accountService) CreateAccount(userID uint, number string, establishmentID, accountTypeID uint) (*models.Account, error) {
	number = strings.TrimSpace(number)
	if err := s.validate(number, establishmentID, accountTypeID); err != nil {
		return nil, err
	}

	account := &models.Account{
		Number:          number,
		UserID:          userID,
		EstablishmentID: establishmentID,
		AccountTypeID:   accountTypeID,
	}
	if err := s.accounts.Create(account); err != nil {
		return nil, err
	}

	logger.Named("accounts").Infow("account created", "user_id", userID, "account_id", account.ID)
	return s.GetAccount(userID, account.ID)
}

// UpdateAccount changes the number, establishment and type of an account.
func (s *accountService) UpdateAccount(userID, accountID uint, number string, establishmentID, accountTypeID uint) (*models.Account, error) {
	account, err := s.GetAccount(userID, accountID)
	if err != nil {
		return nil, err
	}

	number = strings.TrimSpace(number)
	if err := s.validate(number, establishmentID, accountTypeID); err != nil {
		return nil, err
	}

	account.Number = number
	account.EstablishmentID = establishmentID
	account.AccountTypeID = accountTypeID
	account.Establishment = nil
	account.AccountType = nil
	if err := s.accounts.Save(account); err != nil {
		return nil, err
	}

	return s.GetAccount(userID, accountID)
}

// DeleteAccount removes an account and all of its operations in one
// transaction.
func (s *accountService) DeleteAccount(userID, accountID uint) error {
	if _, err := s.GetAccount(userID, accountID); err != nil {
		return err
	}

	err := database.RunInTransaction(s.db, func(tx *gorm.DB) error {
		ops := repository.NewStore[models.Operation](tx, apperrors.ErrOperationNotFound)
		removed, err := ops.Delete(repository.Eq(models.ColOperationAccount, accountID))
		if err != nil {
			return err
		}
		if err := s.accounts.WithTx(tx).DeleteByID(accountID); err != nil {
			return err
		}
		logger.Named("accounts").Infow("account deleted",
			"user_id", userID, "account_id", accountID, "operations_removed", removed)
		return nil
	})
	return err
}

func (s *accountService) validate(number string, establishmentID, accountTypeID uint) error {
	if number == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account number is required")
	}
	if _, err := s.establishments.Get(establishmentID); err != nil {
		return err
	}
	if _, err := s.accountTypes.Get(accountTypeID); err != nil {
		return err
	}
	return nil
}
