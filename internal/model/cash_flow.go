package model

type CashFlowType string

const (
	CashInflow  CashFlowType = "Inflow"
	CashOutflow CashFlowType = "Outflow"
)

func (t CashFlowType) IsValid() bool {
	return t == CashInflow || t == CashOutflow
}

type CashFlow struct {
	BaseModel
	OutletID    uint         `gorm:"not null;index" json:"outlet_id"`
	Type        CashFlowType `gorm:"type:varchar(10);not null" json:"type"`
	Category    string       `gorm:"type:varchar(100);not null" json:"category"`
	Amount      int64        `gorm:"not null" json:"amount"`
	Description string       `gorm:"type:text;not null" json:"description"`
}

func (CashFlow) TableName() string { return string(TableCashFlow) }

// CashFlowUpdate has no mutable columns; entries are corrected by new entries.
type CashFlowUpdate struct{}

func (CashFlowUpdate) Fields() map[string]interface{} { return map[string]interface{}{} }
