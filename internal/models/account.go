package models

// Account is a ledger bucket owned by one user, tied to one establishment
// and one account type.
type Account struct {
	ID              uint   `gorm:"column:IdCompte;primaryKey;autoIncrement" json:"id"`
	Number          string `gorm:"column:NumeroCompte;size:100;not null" json:"number"`
	UserID          uint   `gorm:"column:IdUser;not null;index" json:"user_id"`
	EstablishmentID uint   `gorm:"column:IdEtablissement;not null;index" json:"establishment_id"`
	AccountTypeID   uint   `gorm:"column:IdType;not null;index" json:"account_type_id"`

	// Relationships
	Establishment *Establishment `gorm:"foreignKey:EstablishmentID;references:ID" json:"establishment,omitempty"`
	AccountType   *AccountType   `gorm:"foreignKey:AccountTypeID;references:ID" json:"account_type,omitempty"`
	Operations    []Operation    `gorm:"foreignKey:AccountID;references:ID" json:"operations,omitempty"`
}

// TableName maps Account onto the comptes table.
func (Account) TableName() string { return "comptes" }

// EstablishmentName returns the preloaded establishment name, or "".
func (a *Account) EstablishmentName() string {
	if a.Establishment == nil {
		return ""
	}
	return a.Establishment.Name
}

// AccountTypeName returns the preloaded account type name, or "".
func (a *Account) AccountTypeName() string {
	if a.AccountType == nil {
		return ""
	}
	return a.AccountType.Name
}
