package testutil_test

import (
	"testing"
	"time"

	"comptable/internal/errors"
	"comptable/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var count int64
	for _, table := range []string{"users", "etablissements", "typecomptes", "categories", "comptes", "operations"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	second := testutil.SetupTestDB(t)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Table("users").Count(&count)
	if count != 0 {
		t.Errorf("expected isolated database, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	if user.ID == 0 {
		t.Fatal("user should have a non-zero ID")
	}

	account := testutil.CreateTestAccount(t, db, user.ID)
	if account.UserID != user.ID {
		t.Errorf("expected account owner %d, got %d", user.ID, account.UserID)
	}
	if account.EstablishmentID == 0 || account.AccountTypeID == 0 {
		t.Error("account should reference an establishment and a type")
	}

	category := testutil.CreateTestCategory(t, db, "Food")
	op := testutil.CreateTestOperation(t, db, account.ID, category.ID, "12.50", false, time.Now())
	if op.Amount.String() != "12.5" {
		t.Errorf("expected amount 12.5, got %s", op.Amount)
	}
	if op.IsCredit {
		t.Error("expected a debit")
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrCategoryInUse, "CATEGORY_IN_USE")
	testutil.AssertNoError(t, nil)
}
