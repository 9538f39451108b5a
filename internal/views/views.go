// Package views renders ledger entities as keyed tables for the screens.
package views

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"comptable/internal/format"
	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/table"
)

// Account table column labels.
const (
	ColumnNumber        = "Account number"
	ColumnEstablishment = "Establishment"
	ColumnBalance       = "Balance"
	ColumnType          = "Type"
)

// Operation table column labels.
const (
	ColumnDate      = "Date"
	ColumnAmount    = "Amount"
	ColumnDirection = "Direction"
	ColumnCategory  = "Category"
	ColumnComment   = "Comment"
)

// Account filter names accepted by FilterAccounts.
const (
	FilterNumber        = "number"
	FilterEstablishment = "establishment"
	FilterType          = "type"
	FilterPositive      = "positive"
	FilterNegative      = "negative"
)

// AccountFilters lists the filter names offered on the home screen.
var AccountFilters = []string{FilterNumber, FilterEstablishment, FilterType, FilterPositive, FilterNegative}

// Direction labels.
const (
	DirectionCredit = "Credit"
	DirectionDebit  = "Debit"
)

// AccountsTable renders one row per summary, keyed by account id.
func AccountsTable(summaries []ledger.AccountSummary, f *format.Formatter) table.Table[uint] {
	t := table.Table[uint]{
		Columns: []string{ColumnNumber, ColumnEstablishment, ColumnBalance, ColumnType},
		Rows:    make([]table.Row[uint], 0, len(summaries)),
	}
	for _, s := range summaries {
		t.Rows = append(t.Rows, table.Row[uint]{
			Key: s.AccountID,
			Cells: []table.Cell{
				table.Text(s.Number),
				optional(s.Establishment),
				table.Text(f.Money(s.Balance)),
				optional(s.AccountType),
			},
		})
	}
	return t
}

// Balances indexes summary balances by account id.
func Balances(summaries []ledger.AccountSummary) map[uint]decimal.Decimal {
	out := make(map[uint]decimal.Decimal, len(summaries))
	for _, s := range summaries {
		out[s.AccountID] = s.Balance
	}
	return out
}

// FilterAccounts applies the home-screen search. The query always searches
// every cell unless filter restricts it to one column; the sign filters
// additionally keep rows by the sign of the underlying balance, never by
// the formatted text.
func FilterAccounts(t table.Table[uint], balances map[uint]decimal.Decimal, query, filter string) (table.Table[uint], error) {
	switch strings.ToLower(filter) {
	case "":
		return t.Filter(query, ""), nil
	case FilterNumber:
		return t.Filter(query, ColumnNumber), nil
	case FilterEstablishment:
		return t.Filter(query, ColumnEstablishment), nil
	case FilterType:
		return t.Filter(query, ColumnType), nil
	case FilterPositive:
		return t.Filter(query, "").Where(signIs(balances, ledger.SignPositive)), nil
	case FilterNegative:
		return t.Filter(query, "").Where(signIs(balances, ledger.SignNegative)), nil
	}
	return t, fmt.Errorf("unknown account filter %q", filter)
}

func signIs(balances map[uint]decimal.Decimal, want ledger.Sign) func(table.Row[uint]) bool {
	return func(r table.Row[uint]) bool {
		return ledger.SignOf(balances[r.Key]) == want
	}
}

// OperationsTable renders one row per operation, keyed by operation id.
// Category ids missing from categories show the uncategorized label.
func OperationsTable(ops []models.Operation, categories map[uint]string, f *format.Formatter) table.Table[uint] {
	t := table.Table[uint]{
		Columns: []string{ColumnDate, ColumnAmount, ColumnDirection, ColumnCategory, ColumnComment},
		Rows:    make([]table.Row[uint], 0, len(ops)),
	}
	for _, op := range ops {
		name, ok := categories[op.CategoryID]
		if !ok {
			name = ledger.UncategorizedLabel
		}
		direction := DirectionDebit
		if op.IsCredit {
			direction = DirectionCredit
		}
		t.Rows = append(t.Rows, table.Row[uint]{
			Key: op.ID,
			Cells: []table.Cell{
				table.Text(f.Date(op.Date)),
				table.Text(f.Money(op.Signed())),
				table.Text(direction),
				table.Text(name),
				optional(op.Comment),
			},
		})
	}
	return t
}

func optional(s string) table.Cell {
	if s == "" {
		return table.Null
	}
	return table.Text(s)
}
