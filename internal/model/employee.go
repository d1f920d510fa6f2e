package model

type EmploymentStatus string

const (
	EmployeeActive   EmploymentStatus = "Active"
	EmployeeInactive EmploymentStatus = "Inactive"
)

func (s EmploymentStatus) IsValid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

type Employee struct {
	BaseModel
	Name     string           `gorm:"type:varchar(255);not null" json:"name"`
	OutletID uint             `gorm:"not null;index" json:"outlet_id"`
	Position string           `gorm:"type:varchar(100);not null" json:"position"`
	Salary   int64            `gorm:"not null;default:0" json:"salary"`
	Status   EmploymentStatus `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
}

func (Employee) TableName() string { return string(TableEmployees) }

type EmployeeUpdate struct {
	Position *string
	Salary   *int64
	Status   *EmploymentStatus
}

func (u EmployeeUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Position != nil {
		f["position"] = *u.Position
	}
	if u.Salary != nil {
		f["salary"] = *u.Salary
	}
	if u.Status != nil {
		f["status"] = *u.Status
	}
	return f
}
