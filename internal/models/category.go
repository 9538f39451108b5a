package models

// Category classifies operations.
type Category struct {
	ID   uint   `gorm:"column:IdCategorie;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:NomCategorie;size:255;not null" json:"name"`
}

// TableName maps Category onto the categories table.
func (Category) TableName() string { return "categories" }

func (c *Category) LabelID() uint { return c.ID }
func (c *Category) LabelName() string { return c.Name }
func (c *Category) SetLabelName(n string) { c.Name = n }
