package models

// Column names used in query conditions. They are quoted by gorm, so the
// mixed case survives on PostgreSQL.
const (
	ColUserLogin            = "Login"
	ColAccountID            = "IdCompte"
	ColAccountUser          = "IdUser"
	ColAccountEstablishment = "IdEtablissement"
	ColAccountType          = "IdType"
	ColOperationID          = "IdOperation"
	ColOperationAccount     = "IdCompte"
	ColOperationCategory    = "IdCategorie"
	ColOperationDate        = "DateOperation"
)
