package services

import (
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/ledger"
	"comptable/internal/models"
)

// NewUser holds the signup form fields.
type NewUser struct {
	LastName  string
	FirstName string
	Login     string
	Password  string
	Email     string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Authenticate(login, password string) (*models.User, error)
	CreateUser(input NewUser) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	ListAccounts(userID uint) ([]models.Account, error)
	GetAccount(userID, accountID uint) (*models.Account, error)
	CreateAccount(userID uint, number string, establishmentID, accountTypeID uint) (*models.Account, error)
	UpdateAccount(userID, accountID uint, number string, establishmentID, accountTypeID uint) (*models.Account, error)
	DeleteAccount(userID, accountID uint) error
}

// LabelServicer defines the contract shared by the name-only reference
// entities: establishments, account types and categories.
type LabelServicer[T any] interface {
	List() ([]T, error)
	Get(id uint) (*T, error)
	Create(name string) (*T, error)
	Rename(id uint, name string) (*T, error)
	Delete(id uint) error
}

// OperationFilter holds optional filter parameters for listing operations.
type OperationFilter struct {
	Period     *ledger.Period
	CategoryID *uint
}

// OperationInput holds the editable fields of an operation.
type OperationInput struct {
	AccountID  uint
	CategoryID uint
	Amount     decimal.Decimal
	IsCredit   bool
	Date       time.Time
	Comment    string
}

// OperationServicer defines the contract for operation-related business logic.
type OperationServicer interface {
	ListOperations(userID, accountID uint, filter OperationFilter) ([]models.Operation, error)
	GetOperation(userID, operationID uint) (*models.Operation, error)
	CreateOperation(userID uint, input OperationInput) (*models.Operation, error)
	UpdateOperation(userID, operationID uint, input OperationInput) (*models.Operation, error)
	DeleteOperation(userID, operationID uint) error
}

// ReportServicer defines the contract for balance reports and chart data.
type ReportServicer interface {
	AccountSummaries(userID uint, period *ledger.Period) ([]ledger.AccountSummary, error)
	AccountBalance(userID, accountID uint, period *ledger.Period) (decimal.Decimal, error)
	CategoryBreakdown(userID, accountID uint, period *ledger.Period) (map[string]decimal.Decimal, error)
}
