package models

// User is an application user. Login is unique; Password holds a bcrypt hash
// (rows imported from older installations may still hold plaintext until the
// next successful login).
type User struct {
	ID        uint   `gorm:"column:IdUser;primaryKey;autoIncrement" json:"id"`
	LastName  string `gorm:"column:NomUser;size:100" json:"last_name"`
	FirstName string `gorm:"column:PrenomUser;size:100" json:"first_name"`
	Login     string `gorm:"column:Login;size:100;uniqueIndex;not null" json:"login"`
	Password  string `gorm:"column:MdpUser;size:255;not null" json:"-"`
	Email     string `gorm:"column:MailUser;size:255" json:"email"`

	Accounts []Account `gorm:"foreignKey:UserID;references:ID" json:"accounts,omitempty"`
}

// TableName maps User onto the users table.
func (User) TableName() string { return "users" }
