package realtime

import (
	"time"

	"resto-erp-ws/internal/model"
)

// Tables holds the rows of every synchronized table from one fetch batch.
type Tables struct {
	Outlets         []model.Outlet         `json:"outlets"`
	Employees       []model.Employee       `json:"employees"`
	Products        []model.Product        `json:"products"`
	Ingredients     []model.Ingredient     `json:"ingredients"`
	Sales           []model.Sale           `json:"sales"`
	Suppliers       []model.Supplier       `json:"suppliers"`
	PurchaseOrders  []model.PurchaseOrder  `json:"purchase_orders"`
	Distributions   []model.Distribution   `json:"distributions"`
	DailyChecklists []model.DailyChecklist `json:"daily_checklists"`
	ShiftReports    []model.ShiftReport    `json:"shift_reports"`
	Candidates      []model.Candidate      `json:"candidates"`
	Promotions      []model.Promotion      `json:"promotions"`
	Assets          []model.Asset          `json:"assets"`
	CashFlow        []model.CashFlow       `json:"cash_flow"`
	Users           []model.User           `json:"users"`
}

func emptyTables() Tables {
	return Tables{
		Outlets:         []model.Outlet{},
		Employees:       []model.Employee{},
		Products:        []model.Product{},
		Ingredients:     []model.Ingredient{},
		Sales:           []model.Sale{},
		Suppliers:       []model.Supplier{},
		PurchaseOrders:  []model.PurchaseOrder{},
		Distributions:   []model.Distribution{},
		DailyChecklists: []model.DailyChecklist{},
		ShiftReports:    []model.ShiftReport{},
		Candidates:      []model.Candidate{},
		Promotions:      []model.Promotion{},
		Assets:          []model.Asset{},
		CashFlow:        []model.CashFlow{},
		Users:           []model.User{},
	}
}

// Len returns the row count of a table in the batch.
func (t *Tables) Len(table model.Table) int {
	switch table {
	case model.TableOutlets:
		return len(t.Outlets)
	case model.TableEmployees:
		return len(t.Employees)
	case model.TableProducts:
		return len(t.Products)
	case model.TableIngredients:
		return len(t.Ingredients)
	case model.TableSales:
		return len(t.Sales)
	case model.TableSuppliers:
		return len(t.Suppliers)
	case model.TablePurchaseOrders:
		return len(t.PurchaseOrders)
	case model.TableDistributions:
		return len(t.Distributions)
	case model.TableDailyChecklists:
		return len(t.DailyChecklists)
	case model.TableShiftReports:
		return len(t.ShiftReports)
	case model.TableCandidates:
		return len(t.Candidates)
	case model.TablePromotions:
		return len(t.Promotions)
	case model.TableAssets:
		return len(t.Assets)
	case model.TableCashFlow:
		return len(t.CashFlow)
	case model.TableUsers:
		return len(t.Users)
	}
	return 0
}

// Snapshot is an immutable view of all tables plus the sync state.
// Consumers must not modify the slices it holds.
type Snapshot struct {
	Tables
	IsConnected  bool      `json:"is_connected"`
	IsConfigured bool      `json:"is_configured"`
	Loading      bool      `json:"loading"`
	Error        string    `json:"error,omitempty"`
	Version      uint64    `json:"version"`
	FetchedAt    time.Time `json:"fetched_at"`
}
