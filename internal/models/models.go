// Package models declares the persisted ledger schema.
package models

// All lists every model in dependency order, for gorm AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Establishment{},
		&AccountType{},
		&Category{},
		&Account{},
		&Operation{},
	}
}

// Label is implemented by the name-only reference entities: establishments,
// account types and categories.
type Label interface {
	LabelID() uint
	LabelName() string
	SetLabelName(name string)
}

var (
	_ Label = (*Establishment)(nil)
	_ Label = (*AccountType)(nil)
	_ Label = (*Category)(nil)
)
