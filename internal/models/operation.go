package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is a dated, categorized money movement against an account.
// Amount is an unsigned magnitude; IsCredit carries the direction.
type Operation struct {
	ID         uint            `gorm:"column:IdOperation;primaryKey;autoIncrement" json:"id"`
	Comment    string          `gorm:"column:CommentaireOperation;size:255" json:"comment"`
	Amount     decimal.Decimal `gorm:"column:PrixOperation;type:decimal(15,2);not null" json:"amount"`
	IsCredit   bool            `gorm:"column:NatureOperation;not null" json:"is_credit"`
	Date       time.Time       `gorm:"column:DateOperation;not null;index" json:"date"`
	AccountID  uint            `gorm:"column:IdCompte;not null;index" json:"account_id"`
	CategoryID uint            `gorm:"column:IdCategorie;not null;index" json:"category_id"`
}

// TableName maps Operation onto the operations table.
func (Operation) TableName() string { return "operations" }

// Signed returns the amount with the sign implied by IsCredit.
func (o Operation) Signed() decimal.Decimal {
	if o.IsCredit {
		return o.Amount
	}
	return o.Amount.Neg()
}
