package models

// AccountType is a user-defined label for accounts (checking, savings...).
type AccountType struct {
	ID   uint   `gorm:"column:IdType;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:NomType;size:255;not null" json:"name"`
}

// TableName maps AccountType onto the typecomptes table.
func (AccountType) TableName() string { return "typecomptes" }

func (t *AccountType) LabelID() uint { return t.ID }
func (t *AccountType) LabelName() string { return t.Name }
func (t *AccountType) SetLabelName(n string) { t.Name = n }
