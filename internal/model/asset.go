package model

import "time"

type AssetStatus string

const (
	AssetInUse       AssetStatus = "InUse"
	AssetMaintenance AssetStatus = "Maintenance"
	AssetBroken      AssetStatus = "Broken"
)

func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetInUse, AssetMaintenance, AssetBroken:
		return true
	}
	return false
}

// Asset is outlet equipment tracked by the maintenance module.
// Any status may move to any other status.
type Asset struct {
	BaseModel
	Name            string      `gorm:"type:varchar(255);not null" json:"name"`
	OutletID        uint        `gorm:"not null;index" json:"outlet_id"`
	Status          AssetStatus `gorm:"type:varchar(20);not null;default:'InUse'" json:"status"`
	LastMaintenance time.Time   `gorm:"not null" json:"last_maintenance"`
}

func (Asset) TableName() string { return string(TableAssets) }

type AssetUpdate struct {
	Status          *AssetStatus
	LastMaintenance *time.Time
}

func (u AssetUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Status != nil {
		f["status"] = *u.Status
	}
	if u.LastMaintenance != nil {
		f["last_maintenance"] = *u.LastMaintenance
	}
	return f
}
