package model

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "Percentage"
	DiscountFixed      DiscountType = "Fixed"
)

func (d DiscountType) IsValid() bool {
	return d == DiscountPercentage || d == DiscountFixed
}

type PromotionStatus string

const (
	PromotionActive   PromotionStatus = "Active"
	PromotionUpcoming PromotionStatus = "Upcoming"
	PromotionExpired  PromotionStatus = "Expired"
)

// PromotionStatusAt classifies a promotion window at the given instant.
// Both window ends are inclusive.
func PromotionStatusAt(start, end, now time.Time) PromotionStatus {
	switch {
	case now.Before(start):
		return PromotionUpcoming
	case now.After(end):
		return PromotionExpired
	default:
		return PromotionActive
	}
}

// Promotion is a discount campaign. Status is computed at read time.
type Promotion struct {
	BaseModel
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	DiscountType  DiscountType    `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue float64         `gorm:"not null" json:"discount_value"`
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	EndDate       time.Time       `gorm:"not null" json:"end_date"`
	Status        PromotionStatus `gorm:"-" json:"status"`
}

func (Promotion) TableName() string { return string(TablePromotions) }

func (p *Promotion) Derive(now time.Time) {
	p.Status = PromotionStatusAt(p.StartDate, p.EndDate, now)
}

func (p *Promotion) AfterFind(tx *gorm.DB) error {
	p.Derive(time.Now())
	return nil
}

func (p *Promotion) AfterSave(tx *gorm.DB) error {
	p.Derive(time.Now())
	return nil
}

type PromotionUpdate struct {
	Name          *string
	DiscountValue *float64
	StartDate     *time.Time
	EndDate       *time.Time
}

func (u PromotionUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Name != nil {
		f["name"] = *u.Name
	}
	if u.DiscountValue != nil {
		f["discount_value"] = *u.DiscountValue
	}
	if u.StartDate != nil {
		f["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		f["end_date"] = *u.EndDate
	}
	return f
}
