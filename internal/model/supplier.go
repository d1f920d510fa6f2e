package model

type Supplier struct {
	BaseModel
	Name    string  `gorm:"type:varchar(255);not null" json:"name"`
	Contact string  `gorm:"type:varchar(255);not null" json:"contact"`
	Rating  float64 `gorm:"not null;default:0" json:"rating"`
}

func (Supplier) TableName() string { return string(TableSuppliers) }

type SupplierUpdate struct {
	Name    *string
	Contact *string
	Rating  *float64
}

func (u SupplierUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Contact != nil {
		f["contact"] = *u.Contact
	}
	if u.Rating != nil {
		f["rating"] = *u.Rating
	}
	return f
}
