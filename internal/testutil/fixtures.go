package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"comptable/internal/models"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique login.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithLogin(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithLogin creates a user with the given login.
func CreateTestUserWithLogin(t *testing.T, db *gorm.DB, login string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		LastName:  "Martin",
		FirstName: "Claire",
		Login:     login,
		Password:  string(hash),
		Email:     login + "@test.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEstablishment creates an establishment with a unique name.
func CreateTestEstablishment(t *testing.T, db *gorm.DB) *models.Establishment {
	t.Helper()

	e := &models.Establishment{Name: fmt.Sprintf("Bank %d", nextID())}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("failed to create test establishment: %v", err)
	}
	return e
}

// CreateTestAccountType creates an account type with a unique name.
func CreateTestAccountType(t *testing.T, db *gorm.DB) *models.AccountType {
	t.Helper()

	at := &models.AccountType{Name: fmt.Sprintf("Type %d", nextID())}
	if err := db.Create(at).Error; err != nil {
		t.Fatalf("failed to create test account type: %v", err)
	}
	return at
}

// CreateTestCategory creates a category with the given name.
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	c := &models.Category{Name: name}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return c
}

// CreateTestAccount creates an account for userID with a fresh establishment
// and account type.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID uint) *models.Account {
	t.Helper()

	e := CreateTestEstablishment(t, db)
	at := CreateTestAccountType(t, db)
	return CreateTestAccountWith(t, db, userID, e.ID, at.ID)
}

// CreateTestAccountWith creates an account with explicit references.
func CreateTestAccountWith(t *testing.T, db *gorm.DB, userID, establishmentID, accountTypeID uint) *models.Account {
	t.Helper()

	account := &models.Account{
		Number:          fmt.Sprintf("FR76-%04d", nextID()),
		UserID:          userID,
		EstablishmentID: establishmentID,
		AccountTypeID:   accountTypeID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestOperation records an operation of amount (a decimal string) on
// accountID.
func CreateTestOperation(t *testing.T, db *gorm.DB, accountID, categoryID uint, amount string, isCredit bool, date time.Time) *models.Operation {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}

	op := &models.Operation{
		Comment:    fmt.Sprintf("Operation %d", nextID()),
		Amount:     value,
		IsCredit:   isCredit,
		Date:       date,
		AccountID:  accountID,
		CategoryID: categoryID,
	}
	if err := db.Create(op).Error; err != nil {
		t.Fatalf("failed to create test operation: %v", err)
	}
	return op
}
