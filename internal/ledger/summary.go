package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/models"
)

// Sign classifies a balance for display.
type Sign int

const (
	SignPositive Sign = iota
	SignNegative
)

// Chart colours for credit-like and debit-like balances.
const (
	ColorPositive = "#1dbc7c"
	ColorNegative = "#b61431"
)

// SignOf returns SignPositive for d >= 0 and SignNegative otherwise.
func SignOf(d decimal.Decimal) Sign {
	if d.IsNegative() {
		return SignNegative
	}
	return SignPositive
}

func (s Sign) String() string {
	if s == SignNegative {
		return "negative"
	}
	return "positive"
}

// Color returns the chart colour for the sign.
func (s Sign) Color() string {
	if s == SignNegative {
		return ColorNegative
	}
	return ColorPositive
}

// AccountSummary is the chart datum for one account.
type AccountSummary struct {
	AccountID     uint            `json:"account_id"`
	Number        string          `json:"number"`
	Establishment string          `json:"establishment"`
	AccountType   string          `json:"account_type"`
	Credits       decimal.Decimal `json:"credits"`
	Debits        decimal.Decimal `json:"debits"`
	Balance       decimal.Decimal `json:"balance"`
	IsIncome      bool            `json:"is_income"`
	Color         string          `json:"color"`
}

// Summarize builds the summary of account from its operations. A nil period
// covers every operation; otherwise months are read on the calendar of loc.
func Summarize(account models.Account, ops []models.Operation, period *Period, loc *time.Location) AccountSummary {
	if period != nil {
		ops = InPeriod(ops, *period, loc)
	}
	credits, debits := Totals(ops)
	balance := credits.Sub(debits)
	sign := SignOf(balance)
	return AccountSummary{
		AccountID:     account.ID,
		Number:        account.Number,
		Establishment: account.EstablishmentName(),
		AccountType:   account.AccountTypeName(),
		Credits:       credits,
		Debits:        debits,
		Balance:       balance,
		IsIncome:      sign == SignPositive,
		Color:         sign.Color(),
	}
}

// SummarizeAll summarizes every account, in the given account order.
func SummarizeAll(accounts []models.Account, ops []models.Operation, period *Period, loc *time.Location) []AccountSummary {
	byAccount := GroupByAccount(ops)
	out := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, Summarize(a, byAccount[a.ID], period, loc))
	}
	return out
}
