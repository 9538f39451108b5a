package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/testutil"
)

type operationFixture struct {
	db       *gorm.DB
	svc      OperationServicer
	user     *models.User
	account  *models.Account
	category *models.Category
}

func newOperationFixture(t *testing.T) operationFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	return operationFixture{
		db:       db,
		svc:      NewOperationService(db, NewAccountService(db), time.UTC),
		user:     user,
		account:  testutil.CreateTestAccount(t, db, user.ID),
		category: testutil.CreateTestCategory(t, db, "Groceries"),
	}
}

func (f operationFixture) input(amount string, credit bool, date time.Time) OperationInput {
	return OperationInput{
		AccountID:  f.account.ID,
		CategoryID: f.category.ID,
		Amount:     decimal.RequireFromString(amount),
		IsCredit:   credit,
		Date:       date,
		Comment:    "weekly shopping",
	}
}

func march(d int) time.Time { return time.Date(2024, time.March, d, 10, 0, 0, 0, time.UTC) }
func april(d int) time.Time { return time.Date(2024, time.April, d, 10, 0, 0, 0, time.UTC) }

func TestCreateOperation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := newOperationFixture(t)

		op, err := f.svc.CreateOperation(f.user.ID, f.input("42.50", false, march(3)))
		testutil.AssertNoError(t, err)
		if op.ID == 0 {
			t.Fatal("expected non-zero operation ID")
		}
		if !op.Amount.Equal(decimal.RequireFromString("42.5")) {
			t.Errorf("expected amount 42.5, got %s", op.Amount)
		}
	})

	t.Run("zero_amount_allowed", func(t *testing.T) {
		f := newOperationFixture(t)
		_, err := f.svc.CreateOperation(f.user.ID, f.input("0", true, march(3)))
		testutil.AssertNoError(t, err)
	})

	t.Run("negative_amount", func(t *testing.T) {
		f := newOperationFixture(t)
		_, err := f.svc.CreateOperation(f.user.ID, f.input("-1", true, march(3)))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_date", func(t *testing.T) {
		f := newOperationFixture(t)
		_, err := f.svc.CreateOperation(f.user.ID, f.input("1", true, time.Time{}))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		f := newOperationFixture(t)
		in := f.input("1", true, march(3))
		in.CategoryID = 999
		_, err := f.svc.CreateOperation(f.user.ID, in)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("foreign_account", func(t *testing.T) {
		f := newOperationFixture(t)
		other := testutil.CreateTestUser(t, f.db)
		_, err := f.svc.CreateOperation(other.ID, f.input("1", true, march(3)))
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestListOperations(t *testing.T) {
	f := newOperationFixture(t)
	rent := testutil.CreateTestCategory(t, f.db, "Rent")

	first := testutil.CreateTestOperation(t, f.db, f.account.ID, f.category.ID, "10", false, march(1))
	second := testutil.CreateTestOperation(t, f.db, f.account.ID, rent.ID, "500", false, march(31))
	third := testutil.CreateTestOperation(t, f.db, f.account.ID, f.category.ID, "25", true, april(2))

	t.Run("all_newest_first", func(t *testing.T) {
		ops, err := f.svc.ListOperations(f.user.ID, f.account.ID, OperationFilter{})
		testutil.AssertNoError(t, err)
		want := []uint{third.ID, second.ID, first.ID}
		if len(ops) != len(want) {
			t.Fatalf("expected %d operations, got %d", len(want), len(ops))
		}
		for i, id := range want {
			if ops[i].ID != id {
				t.Errorf("position %d: expected operation %d, got %d", i, id, ops[i].ID)
			}
		}
	})

	t.Run("period", func(t *testing.T) {
		p := ledger.Period{Year: 2024, Month: time.March}
		ops, err := f.svc.ListOperations(f.user.ID, f.account.ID, OperationFilter{Period: &p})
		testutil.AssertNoError(t, err)
		if len(ops) != 2 {
			t.Fatalf("expected 2 March operations, got %d", len(ops))
		}
	})

	t.Run("category", func(t *testing.T) {
		ops, err := f.svc.ListOperations(f.user.ID, f.account.ID, OperationFilter{CategoryID: &rent.ID})
		testutil.AssertNoError(t, err)
		if len(ops) != 1 || ops[0].ID != second.ID {
			t.Errorf("expected only the rent operation, got %+v", ops)
		}
	})

	t.Run("foreign_account", func(t *testing.T) {
		other := testutil.CreateTestUser(t, f.db)
		_, err := f.svc.ListOperations(other.ID, f.account.ID, OperationFilter{})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestUpdateOperation(t *testing.T) {
	f := newOperationFixture(t)
	op, err := f.svc.CreateOperation(f.user.ID, f.input("10", false, march(3)))
	testutil.AssertNoError(t, err)

	target := testutil.CreateTestAccount(t, f.db, f.user.ID)
	in := f.input("12.345", true, april(1))
	in.AccountID = target.ID
	in.Comment = "refund"

	updated, err := f.svc.UpdateOperation(f.user.ID, op.ID, in)
	testutil.AssertNoError(t, err)

	if !updated.Amount.Equal(decimal.RequireFromString("12.35")) {
		t.Errorf("expected amount rounded to cents, got %s", updated.Amount)
	}
	if !updated.IsCredit || updated.AccountID != target.ID || updated.Comment != "refund" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	_, err = f.svc.UpdateOperation(f.user.ID, op.ID+100, in)
	testutil.AssertAppError(t, err, "OPERATION_NOT_FOUND")
}

func TestDeleteOperation(t *testing.T) {
	f := newOperationFixture(t)
	op := testutil.CreateTestOperation(t, f.db, f.account.ID, f.category.ID, "10", false, march(3))

	other := testutil.CreateTestUser(t, f.db)
	err := f.svc.DeleteOperation(other.ID, op.ID)
	testutil.AssertAppError(t, err, "OPERATION_NOT_FOUND")

	testutil.AssertNoError(t, f.svc.DeleteOperation(f.user.ID, op.ID))

	_, err = f.svc.GetOperation(f.user.ID, op.ID)
	testutil.AssertAppError(t, err, "OPERATION_NOT_FOUND")
}
