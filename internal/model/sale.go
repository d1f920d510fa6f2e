package model

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "Cash"
	PaymentDebit   PaymentMethod = "Debit"
	PaymentCredit  PaymentMethod = "Credit"
	PaymentQRIS    PaymentMethod = "QRIS"
	PaymentEwallet PaymentMethod = "Ewallet"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentQRIS, PaymentEwallet:
		return true
	}
	return false
}

// Sale is a completed point-of-sale checkout.
type Sale struct {
	BaseModel
	OutletID      uint          `gorm:"not null;index" json:"outlet_id"`
	CashierName   string        `gorm:"type:varchar(255);not null" json:"cashier_name"`
	Total         int64         `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
}

func (Sale) TableName() string { return string(TableSales) }

// SaleUpdate has no mutable columns; sales are append-only.
type SaleUpdate struct{}

func (SaleUpdate) Fields() map[string]interface{} { return map[string]interface{}{} }
