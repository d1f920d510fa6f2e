package model

type DailyChecklist struct {
	BaseModel
	OutletID  uint   `gorm:"not null;index" json:"outlet_id"`
	Task      string `gorm:"type:varchar(255);not null" json:"task"`
	Notes     string `gorm:"type:text" json:"notes"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
}

func (DailyChecklist) TableName() string { return string(TableDailyChecklists) }

type DailyChecklistUpdate struct {
	Notes     *string
	Completed *bool
}

func (u DailyChecklistUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Notes != nil {
		f["notes"] = *u.Notes
	}
	if u.Completed != nil {
		f["completed"] = *u.Completed
	}
	return f
}
