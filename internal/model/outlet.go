package model

type OutletStatus string

const (
	OutletOpen       OutletStatus = "Open"
	OutletClosed     OutletStatus = "Closed"
	OutletRenovation OutletStatus = "Renovation"
)

func (s OutletStatus) IsValid() bool {
	switch s {
	case OutletOpen, OutletClosed, OutletRenovation:
		return true
	}
	return false
}

// Outlet is a physical restaurant location.
type Outlet struct {
	BaseModel
	Name    string       `gorm:"type:varchar(255);not null" json:"name"`
	Area    string       `gorm:"type:varchar(100);not null" json:"area"`
	Address string       `gorm:"type:text;not null" json:"address"`
	Status  OutletStatus `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
}

func (Outlet) TableName() string { return string(TableOutlets) }

type OutletUpdate struct {
	Name    *string
	Area    *string
	Address *string
	Status  *OutletStatus
}

func (u OutletUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.Area != nil {
		f["area"] = *u.Area
	}
	if u.Address != nil {
		f["address"] = *u.Address
	}
	if u.Status != nil {
		f["status"] = *u.Status
	}
	return f
}
