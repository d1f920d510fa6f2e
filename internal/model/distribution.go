package model

type DistributionStatus string

const (
	DistributionPending   DistributionStatus = "Pending"
	DistributionInTransit DistributionStatus = "InTransit"
	DistributionDelivered DistributionStatus = "Delivered"
)

func (s DistributionStatus) IsValid() bool {
	switch s {
	case DistributionPending, DistributionInTransit, DistributionDelivered:
		return true
	}
	return false
}

// CanTransition only moves undelivered transfers to Delivered.
// InTransit is a valid stored value but no operation enters it.
func (s DistributionStatus) CanTransition(to DistributionStatus) bool {
	return to == DistributionDelivered && (s == DistributionPending || s == DistributionInTransit)
}

// Distribution is an ingredient transfer between two outlets.
type Distribution struct {
	BaseModel
	FromOutletID   uint               `gorm:"not null;index" json:"from_outlet_id"`
	ToOutletID     uint               `gorm:"not null;index" json:"to_outlet_id"`
	IngredientName string             `gorm:"type:varchar(255);not null" json:"ingredient_name"`
	Quantity       float64            `gorm:"not null" json:"quantity"`
	Status         DistributionStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
}

func (Distribution) TableName() string { return string(TableDistributions) }

type DistributionUpdate struct {
	Status *DistributionStatus
}

func (u DistributionUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Status != nil {
		f["status"] = *u.Status
	}
	return f
}
