package services

import (
	"testing"
	"time"

	"comptable/internal/testutil"
)

func TestLabelServiceCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewCategoryService(db)

	rent, err := svc.Create("  Rent ")
	testutil.AssertNoError(t, err)
	if rent.Name != "Rent" {
		t.Errorf("expected trimmed name, got %q", rent.Name)
	}
	_, err = svc.Create("food")
	testutil.AssertNoError(t, err)

	all, err := svc.List()
	testutil.AssertNoError(t, err)
	if len(all) != 2 || all[0].Name != "food" || all[1].Name != "Rent" {
		t.Errorf("expected case-insensitive name order, got %+v", all)
	}

	renamed, err := svc.Rename(rent.ID, "Housing")
	testutil.AssertNoError(t, err)
	if renamed.Name != "Housing" {
		t.Errorf("expected Housing, got %s", renamed.Name)
	}

	got, err := svc.Get(rent.ID)
	testutil.AssertNoError(t, err)
	if got.Name != "Housing" {
		t.Errorf("expected rename to persist, got %s", got.Name)
	}

	testutil.AssertNoError(t, svc.Delete(rent.ID))
	_, err = svc.Get(rent.ID)
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestLabelServiceValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewEstablishmentService(db)

	_, err := svc.Create("   ")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.Rename(42, "Bank")
	testutil.AssertAppError(t, err, "ESTABLISHMENT_NOT_FOUND")

	err = svc.Delete(42)
	testutil.AssertAppError(t, err, "ESTABLISHMENT_NOT_FOUND")
}

func TestLabelDeleteGuards(t *testing.T) {
	t.Run("establishment_in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewEstablishmentService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		err := svc.Delete(account.EstablishmentID)
		testutil.AssertAppError(t, err, "ESTABLISHMENT_IN_USE")

		_, err = svc.Get(account.EstablishmentID)
		testutil.AssertNoError(t, err)
	})

	t.Run("account_type_in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountTypeService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		err := svc.Delete(account.AccountTypeID)
		testutil.AssertAppError(t, err, "ACCOUNT_TYPE_IN_USE")

		_, err = svc.Get(account.AccountTypeID)
		testutil.AssertNoError(t, err)
	})

	t.Run("category_in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		food := testutil.CreateTestCategory(t, db, "Food")
		testutil.CreateTestOperation(t, db, account.ID, food.ID, "3.20", false, time.Now().UTC())

		err := svc.Delete(food.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("unused_type_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountTypeService(db)
		unused := testutil.CreateTestAccountType(t, db)

		testutil.AssertNoError(t, svc.Delete(unused.ID))
		_, err := svc.Get(unused.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_TYPE_NOT_FOUND")
	})
}

// An establishment referenced by an account cannot be deleted, and the
// account still resolves it afterwards.
func TestEstablishmentGuardKeepsAccountIntact(t *testing.T) {
	db := testutil.SetupTestDB(t)
	establishments := NewEstablishmentService(db)
	accounts := NewAccountService(db)
	types := NewAccountTypeService(db)
	user := testutil.CreateTestUser(t, db)

	bank, err := establishments.Create("Bank1")
	testutil.AssertNoError(t, err)
	kind, err := types.Create("Checking")
	testutil.AssertNoError(t, err)
	account, err := accounts.CreateAccount(user.ID, "A1", bank.ID, kind.ID)
	testutil.AssertNoError(t, err)

	err = establishments.Delete(bank.ID)
	testutil.AssertAppError(t, err, "ESTABLISHMENT_IN_USE")

	reloaded, err := accounts.GetAccount(user.ID, account.ID)
	testutil.AssertNoError(t, err)
	if reloaded.EstablishmentName() != "Bank1" {
		t.Errorf("expected account to still resolve Bank1, got %q", reloaded.EstablishmentName())
	}
}
