package ledger

import (
	"testing"
	"time"

	"comptable/internal/models"
)

func TestSignOf(t *testing.T) {
	tests := []struct {
		in   string
		want Sign
	}{
		{"0", SignPositive},
		{"0.01", SignPositive},
		{"-0.01", SignNegative},
	}
	for _, tt := range tests {
		if got := SignOf(mustDecimal(tt.in)); got != tt.want {
			t.Errorf("SignOf(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	account := models.Account{
		ID:            7,
		Number:        "A1",
		Establishment: &models.Establishment{ID: 1, Name: "Bank1"},
		AccountType:   &models.AccountType{ID: 1, Name: "Checking"},
	}
	ops := []models.Operation{
		op("100", true, day(2024, time.March, 3), 1),
		op("140", false, day(2024, time.March, 4), 1),
		op("500", true, day(2024, time.April, 1), 1),
	}

	t.Run("all_time", func(t *testing.T) {
		s := Summarize(account, ops, nil, time.UTC)
		assertDecimal(t, "460", s.Balance)
		if !s.IsIncome || s.Color != ColorPositive {
			t.Errorf("expected positive summary, got %+v", s)
		}
		if s.Establishment != "Bank1" || s.AccountType != "Checking" {
			t.Errorf("unexpected labels: %+v", s)
		}
	})

	t.Run("period", func(t *testing.T) {
		march := Period{Year: 2024, Month: time.March}
		s := Summarize(account, ops, &march, time.UTC)
		assertDecimal(t, "-40", s.Balance)
		assertDecimal(t, "100", s.Credits)
		assertDecimal(t, "140", s.Debits)
		if s.IsIncome || s.Color != ColorNegative {
			t.Errorf("expected negative summary, got %+v", s)
		}
	})
}

func TestSummarizeAll(t *testing.T) {
	accounts := []models.Account{{ID: 1, Number: "A1"}, {ID: 2, Number: "A2"}}
	o1 := op("10", true, day(2024, time.March, 1), 1)
	o1.AccountID = 2
	o2 := op("4", false, day(2024, time.March, 1), 1)
	o2.AccountID = 1

	got := SummarizeAll(accounts, []models.Operation{o1, o2}, nil, time.UTC)

	if len(got) != 2 || got[0].AccountID != 1 || got[1].AccountID != 2 {
		t.Fatalf("expected summaries in account order, got %+v", got)
	}
	assertDecimal(t, "-4", got[0].Balance)
	assertDecimal(t, "10", got[1].Balance)
}
