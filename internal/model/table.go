package model

import "fmt"

// Table identifies one of the fifteen synchronized tables.
type Table string

const (
	TableOutlets         Table = "outlets"
	TableEmployees       Table = "employees"
	TableProducts        Table = "products"
	TableIngredients     Table = "ingredients"
	TableSales           Table = "sales"
	TableSuppliers       Table = "suppliers"
	TablePurchaseOrders  Table = "purchase_orders"
	TableDistributions   Table = "distributions"
	TableDailyChecklists Table = "daily_checklists"
	TableShiftReports    Table = "shift_reports"
	TableCandidates      Table = "candidates"
	TablePromotions      Table = "promotions"
	TableAssets          Table = "assets"
	TableCashFlow        Table = "cash_flow"
	TableUsers           Table = "users"
)

var allTables = []Table{
	TableOutlets,
	TableEmployees,
	TableProducts,
	TableIngredients,
	TableSales,
	TableSuppliers,
	TablePurchaseOrders,
	TableDistributions,
	TableDailyChecklists,
	TableShiftReports,
	TableCandidates,
	TablePromotions,
	TableAssets,
	TableCashFlow,
	TableUsers,
}

// AllTables returns every synchronized table in fetch order.
func AllTables() []Table {
	out := make([]Table, len(allTables))
	copy(out, allTables)
	return out
}

// ParseTable converts a raw table name into a Table.
func ParseTable(name string) (Table, error) {
	t := Table(name)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown table %q", name)
	}
	return t, nil
}

func (t Table) IsValid() bool {
	for _, known := range allTables {
		if t == known {
			return true
		}
	}
	return false
}

// IsTransactional reports whether the table holds transaction-like rows,
// which are read newest first. Reference tables are read by id.
func (t Table) IsTransactional() bool {
	switch t {
	case TableSales, TablePurchaseOrders, TableDistributions, TableDailyChecklists,
		TableShiftReports, TableCandidates, TablePromotions, TableCashFlow:
		return true
	}
	return false
}

// Order returns the ORDER BY clause used when reading the whole table.
func (t Table) Order() string {
	if t.IsTransactional() {
		return "created_at DESC"
	}
	return "id ASC"
}

// Channel is the notification channel carrying row changes for the table.
func (t Table) Channel() string {
	return string(t) + "_changes"
}
