// Package ledger turns operation rows into balances and chart data.
// Every function is pure: callers load the operations, the ledger folds them.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/models"
)

// UncategorizedLabel names the group of operations whose category id has no
// known name.
const UncategorizedLabel = "Uncategorized"

// Balance returns the signed sum of ops: credits add, debits subtract.
func Balance(ops []models.Operation) decimal.Decimal {
	total := decimal.Zero
	for _, op := range ops {
		total = total.Add(op.Signed())
	}
	return total
}

// InPeriod returns the operations dated inside p on the calendar of loc,
// preserving order.
func InPeriod(ops []models.Operation, p Period, loc *time.Location) []models.Operation {
	var out []models.Operation
	for _, op := range ops {
		if p.Contains(op.Date, loc) {
			out = append(out, op)
		}
	}
	return out
}

// BalanceForPeriod returns the balance of the operations dated inside p.
func BalanceForPeriod(ops []models.Operation, p Period, loc *time.Location) decimal.Decimal {
	return Balance(InPeriod(ops, p, loc))
}

// BalanceByCategory sums signed amounts per category name. Category ids
// missing from names are grouped under UncategorizedLabel.
func BalanceByCategory(ops []models.Operation, names map[uint]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, op := range ops {
		name, ok := names[op.CategoryID]
		if !ok {
			name = UncategorizedLabel
		}
		out[name] = out[name].Add(op.Signed())
	}
	return out
}

// Totals returns the credit and debit magnitudes of ops separately.
func Totals(ops []models.Operation) (credits, debits decimal.Decimal) {
	credits, debits = decimal.Zero, decimal.Zero
	for _, op := range ops {
		if op.IsCredit {
			credits = credits.Add(op.Amount)
		} else {
			debits = debits.Add(op.Amount)
		}
	}
	return credits, debits
}

// GroupByAccount indexes ops by account id, preserving order within each account.
func GroupByAccount(ops []models.Operation) map[uint][]models.Operation {
	out := make(map[uint][]models.Operation)
	for _, op := range ops {
		out[op.AccountID] = append(out[op.AccountID], op)
	}
	return out
}
