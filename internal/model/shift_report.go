package model

import (
	"time"

	"gorm.io/gorm"
)

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "Open"
	ShiftClosed ShiftStatus = "Closed"
)

func (s ShiftStatus) IsValid() bool {
	return s == ShiftOpen || s == ShiftClosed
}

// ShiftReport is a cashier shift opened with an opening balance.
// A shift is Closed once its closing balance is recorded.
type ShiftReport struct {
	BaseModel
	OutletID       uint        `gorm:"not null;index" json:"outlet_id"`
	EmployeeName   string      `gorm:"type:varchar(255);not null" json:"employee_name"`
	OpeningBalance int64       `gorm:"not null" json:"opening_balance"`
	ClosingBalance *int64      `json:"closing_balance"`
	Notes          string      `gorm:"type:text" json:"notes"`
	OpenedAt       time.Time   `gorm:"not null" json:"opened_at"`
	ClosedAt       *time.Time  `json:"closed_at"`
	Status         ShiftStatus `gorm:"-" json:"status"`
}

func (ShiftReport) TableName() string { return string(TableShiftReports) }

func (r *ShiftReport) Derive() {
	if r.ClosingBalance != nil {
		r.Status = ShiftClosed
		return
	}
	r.Status = ShiftOpen
}

func (r *ShiftReport) AfterFind(tx *gorm.DB) error {
	r.Derive()
	return nil
}

func (r *ShiftReport) AfterSave(tx *gorm.DB) error {
	r.Derive()
	return nil
}

type ShiftReportUpdate struct {
	ClosingBalance *int64
	ClosedAt       *time.Time
	Notes          *string
}

func (u ShiftReportUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.ClosingBalance != nil {
		f["closing_balance"] = *u.ClosingBalance
	}
	if u.ClosedAt != nil {
		f["closed_at"] = *u.ClosedAt
	}
	if u.Notes != nil {
		f["notes"] = *u.Notes
	}
	return f
}
