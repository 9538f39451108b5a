package models

// Establishment is a bank or institution label attached to accounts.
type Establishment struct {
	ID   uint   `gorm:"column:IdEtablissement;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:NomEtablissement;size:255;not null" json:"name"`
}

// TableName maps Establishment onto the etablissements table.
func (Establishment) TableName() string { return "etablissements" }

func (e *Establishment) LabelID() uint { return e.ID }
func (e *Establishment) LabelName() string { return e.Name }
func (e *Establishment) SetLabelName(n string) { e.Name = n }
