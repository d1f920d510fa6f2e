package model

type PurchaseOrderStatus string

const (
	POPending  PurchaseOrderStatus = "Pending"
	POApproved PurchaseOrderStatus = "Approved"
	PORejected PurchaseOrderStatus = "Rejected"
)

func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case POPending, POApproved, PORejected:
		return true
	}
	return false
}

// CanTransition allows only the one-way decision out of Pending.
func (s PurchaseOrderStatus) CanTransition(to PurchaseOrderStatus) bool {
	return s == POPending && (to == POApproved || to == PORejected)
}

type PurchaseOrder struct {
	BaseModel
	OutletID   uint                `gorm:"not null;index" json:"outlet_id"`
	SupplierID uint                `gorm:"not null;index" json:"supplier_id"`
	Total      int64               `gorm:"not null" json:"total"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
}

func (PurchaseOrder) TableName() string { return string(TablePurchaseOrders) }

type PurchaseOrderUpdate struct {
	Status *PurchaseOrderStatus
}

func (u PurchaseOrderUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Status != nil {
		f["status"] = *u.Status
	}
	return f
}
