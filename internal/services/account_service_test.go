package services

import (
	"testing"
	"time"

	"comptable/internal/models"
	"comptable/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestEstablishment(t, db)
		kind := testutil.CreateTestAccountType(t, db)

		account, err := svc.CreateAccount(user.ID, " FR76 0001 ", bank.ID, kind.ID)
		testutil.AssertNoError(t, err)

		if account.Number != "FR76 0001" {
			t.Errorf("expected trimmed number, got %q", account.Number)
		}
		if account.EstablishmentName() != bank.Name {
			t.Errorf("expected establishment %s, got %s", bank.Name, account.EstablishmentName())
		}
		if account.AccountTypeName() != kind.Name {
			t.Errorf("expected type %s, got %s", kind.Name, account.AccountTypeName())
		}
	})

	t.Run("missing_number", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestEstablishment(t, db)
		kind := testutil.CreateTestAccountType(t, db)

		_, err := svc.CreateAccount(user.ID, "", bank.ID, kind.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_establishment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		kind := testutil.CreateTestAccountType(t, db)

		_, err := svc.CreateAccount(user.ID, "123", 999, kind.ID)
		testutil.AssertAppError(t, err, "ESTABLISHMENT_NOT_FOUND")
	})

	t.Run("unknown_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		bank := testutil.CreateTestEstablishment(t, db)

		_, err := svc.CreateAccount(user.ID, "123", bank.ID, 999)
		testutil.AssertAppError(t, err, "ACCOUNT_TYPE_NOT_FOUND")
	})
}

func TestListAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAccountService(db)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)

	first := testutil.CreateTestAccount(t, db, alice.ID)
	second := testutil.CreateTestAccount(t, db, alice.ID)
	testutil.CreateTestAccount(t, db, bob.ID)

	accounts, err := svc.ListAccounts(alice.ID)
	testutil.AssertNoError(t, err)

	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ID != first.ID || accounts[1].ID != second.ID {
		t.Errorf("expected accounts in id order, got %d, %d", accounts[0].ID, accounts[1].ID)
	}
	if accounts[0].Establishment == nil || accounts[0].AccountType == nil {
		t.Error("expected establishment and type to be preloaded")
	}
}

func TestGetAccountOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAccountService(db)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, alice.ID)

	_, err := svc.GetAccount(alice.ID, account.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.GetAccount(bob.ID, account.ID)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

	_, err = svc.GetAccount(alice.ID, account.ID+100)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestUpdateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAccountService(db)
	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID)
	otherBank := testutil.CreateTestEstablishment(t, db)

	updated, err := svc.UpdateAccount(user.ID, account.ID, "NEW-42", otherBank.ID, account.AccountTypeID)
	testutil.AssertNoError(t, err)

	if updated.Number != "NEW-42" {
		t.Errorf("expected number NEW-42, got %s", updated.Number)
	}
	if updated.EstablishmentName() != otherBank.Name {
		t.Errorf("expected establishment %s, got %s", otherBank.Name, updated.EstablishmentName())
	}

	_, err = svc.UpdateAccount(user.ID, account.ID, "NEW-42", otherBank.ID, 999)
	testutil.AssertAppError(t, err, "ACCOUNT_TYPE_NOT_FOUND")
}

func TestDeleteAccountCascadesOperations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAccountService(db)
	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID)
	kept := testutil.CreateTestAccount(t, db, user.ID)
	food := testutil.CreateTestCategory(t, db, "Food")
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	testutil.CreateTestOperation(t, db, account.ID, food.ID, "10.00", false, now)
	testutil.CreateTestOperation(t, db, account.ID, food.ID, "20.00", true, now)
	testutil.CreateTestOperation(t, db, kept.ID, food.ID, "5.00", true, now)

	testutil.AssertNoError(t, svc.DeleteAccount(user.ID, account.ID))

	var accounts, ops int64
	db.Model(&models.Account{}).Count(&accounts)
	db.Model(&models.Operation{}).Count(&ops)
	if accounts != 1 {
		t.Errorf("expected 1 account left, got %d", accounts)
	}
	if ops != 1 {
		t.Errorf("expected only the other account's operation left, got %d", ops)
	}

	err := svc.DeleteAccount(user.ID, account.ID)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestDeleteAccountOtherUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAccountService(db)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, alice.ID)

	err := svc.DeleteAccount(bob.ID, account.ID)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

	_, err = svc.GetAccount(alice.ID, account.ID)
	testutil.AssertNoError(t, err)
}
