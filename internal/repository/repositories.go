package repository

import (
	"resto-erp-ws/internal/model"

	"gorm.io/gorm"
)

type (
	OutletRepository         = TableRepository[model.Outlet, model.OutletUpdate]
	EmployeeRepository       = TableRepository[model.Employee, model.EmployeeUpdate]
	ProductRepository        = TableRepository[model.Product, model.ProductUpdate]
	IngredientRepository     = TableRepository[model.Ingredient, model.IngredientUpdate]
	SaleRepository           = TableRepository[model.Sale, model.SaleUpdate]
	SupplierRepository       = TableRepository[model.Supplier, model.SupplierUpdate]
	PurchaseOrderRepository  = TableRepository[model.PurchaseOrder, model.PurchaseOrderUpdate]
	DistributionRepository   = TableRepository[model.Distribution, model.DistributionUpdate]
	DailyChecklistRepository = TableRepository[model.DailyChecklist, model.DailyChecklistUpdate]
	ShiftReportRepository    = TableRepository[model.ShiftReport, model.ShiftReportUpdate]
	CandidateRepository      = TableRepository[model.Candidate, model.CandidateUpdate]
	PromotionRepository      = TableRepository[model.Promotion, model.PromotionUpdate]
	AssetRepository          = TableRepository[model.Asset, model.AssetUpdate]
	CashFlowRepository       = TableRepository[model.CashFlow, model.CashFlowUpdate]
	UserRepository           = TableRepository[model.User, model.UserUpdate]
)

// Repositories is the typed data client: one repository per synchronized table.
type Repositories struct {
	Outlets         OutletRepository
	Employees       EmployeeRepository
	Products        ProductRepository
	Ingredients     IngredientRepository
	Sales           SaleRepository
	Suppliers       SupplierRepository
	PurchaseOrders  PurchaseOrderRepository
	Distributions   DistributionRepository
	DailyChecklists DailyChecklistRepository
	ShiftReports    ShiftReportRepository
	Candidates      CandidateRepository
	Promotions      PromotionRepository
	Assets          AssetRepository
	CashFlow        CashFlowRepository
	Users           UserRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Outlets:         newTableRepo[model.Outlet, model.OutletUpdate](db, model.TableOutlets),
		Employees:       newTableRepo[model.Employee, model.EmployeeUpdate](db, model.TableEmployees),
		Products:        newTableRepo[model.Product, model.ProductUpdate](db, model.TableProducts),
		Ingredients:     newTableRepo[model.Ingredient, model.IngredientUpdate](db, model.TableIngredients),
		Sales:           newTableRepo[model.Sale, model.SaleUpdate](db, model.TableSales),
		Suppliers:       newTableRepo[model.Supplier, model.SupplierUpdate](db, model.TableSuppliers),
		PurchaseOrders:  newTableRepo[model.PurchaseOrder, model.PurchaseOrderUpdate](db, model.TablePurchaseOrders),
		Distributions:   newTableRepo[model.Distribution, model.DistributionUpdate](db, model.TableDistributions),
		DailyChecklists: newTableRepo[model.DailyChecklist, model.DailyChecklistUpdate](db, model.TableDailyChecklists),
		ShiftReports:    newTableRepo[model.ShiftReport, model.ShiftReportUpdate](db, model.TableShiftReports),
		Candidates:      newTableRepo[model.Candidate, model.CandidateUpdate](db, model.TableCandidates),
		Promotions:      newTableRepo[model.Promotion, model.PromotionUpdate](db, model.TablePromotions),
		Assets:          newTableRepo[model.Asset, model.AssetUpdate](db, model.TableAssets),
		CashFlow:        newTableRepo[model.CashFlow, model.CashFlowUpdate](db, model.TableCashFlow),
		Users:           newTableRepo[model.User, model.UserUpdate](db, model.TableUsers),
	}
}

// Models lists one zero row per table for schema migration.
func Models() []interface{} {
	return []interface{}{
		&model.Outlet{}, &model.Employee{}, &model.Product{}, &model.Ingredient{},
		&model.Sale{}, &model.Supplier{}, &model.PurchaseOrder{}, &model.Distribution{},
		&model.DailyChecklist{}, &model.ShiftReport{}, &model.Candidate{}, &model.Promotion{},
		&model.Asset{}, &model.CashFlow{}, &model.User{},
	}
}

// Migrate creates or updates the schema of every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
