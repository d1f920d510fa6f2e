package model

import "gorm.io/gorm"

type IngredientStatus string

const (
	IngredientCritical IngredientStatus = "Critical"
	IngredientLow      IngredientStatus = "Low"
	IngredientNormal   IngredientStatus = "Normal"
)

func (s IngredientStatus) IsValid() bool {
	switch s {
	case IngredientCritical, IngredientLow, IngredientNormal:
		return true
	}
	return false
}

// IngredientStatusFor classifies a stock level against its minimum:
// below the minimum is Critical, below twice the minimum is Low.
func IngredientStatusFor(stock, minStock float64) IngredientStatus {
	switch {
	case stock < minStock:
		return IngredientCritical
	case stock < 2*minStock:
		return IngredientLow
	default:
		return IngredientNormal
	}
}

// Ingredient is a stocked raw material at one outlet.
// Status is derived from Stock and MinStock and never persisted.
type Ingredient struct {
	BaseModel
	Name     string           `gorm:"type:varchar(255);not null" json:"name"`
	OutletID uint             `gorm:"not null;index" json:"outlet_id"`
	Stock    float64          `gorm:"not null;default:0" json:"stock"`
	Unit     string           `gorm:"type:varchar(20);not null" json:"unit"`
	MinStock float64          `gorm:"not null;default:0" json:"min_stock"`
	Status   IngredientStatus `gorm:"-" json:"status"`
}

func (Ingredient) TableName() string { return string(TableIngredients) }

// Derive recomputes Status from the stock levels.
func (i *Ingredient) Derive() {
	i.Status = IngredientStatusFor(i.Stock, i.MinStock)
}

func (i *Ingredient) AfterFind(tx *gorm.DB) error {
	i.Derive()
	return nil
}

func (i *Ingredient) AfterSave(tx *gorm.DB) error {
	i.Derive()
	return nil
}

type IngredientUpdate struct {
	Name     *string
	Stock    *float64
	Unit     *string
	MinStock *float64
}

func (u IngredientUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Stock != nil {
		f["stock"] = *u.Stock
	}
	if u.Unit != nil {
		f["unit"] = *u.Unit
	}
	if u.MinStock != nil {
		f["min_stock"] = *u.MinStock
	}
	return f
}
