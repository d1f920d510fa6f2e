package model

// Product is a menu item sold at the point of sale.
type Product struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Category string `gorm:"type:varchar(100);not null" json:"category"`
	Price    int64  `gorm:"not null;default:0" json:"price"`
}

func (Product) TableName() string { return string(TableProducts) }

type ProductUpdate struct {
	Name     *string
	Category *string
	Price    *int64
}

func (u ProductUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Category != nil {
		f["category"] = *u.Category
	}
	if u.Price != nil {
		f["price"] = *u.Price
	}
	return f
}
