package service

import (
	"time"

	"resto-erp-ws/internal/model"
)

type DashboardService interface {
	GetDashboardStats(outletID *uint) *DashboardStats
}

type SyncState struct {
	IsConnected  bool      `json:"is_connected"`
	IsConfigured bool      `json:"is_configured"`
	Loading      bool      `json:"loading"`
	Error        string    `json:"error,omitempty"`
	Version      uint64    `json:"version"`
	FetchedAt    time.Time `json:"fetched_at"`
}

type WorkforceStats struct {
	Active   int   `json:"active"`
	Inactive int   `json:"inactive"`
	Payroll  int64 `json:"payroll"`
}

// DashboardStats are the per-module counters shown on the module dashboards.
// Status counts are keyed by the status value.
type DashboardStats struct {
	Sync           SyncState       `json:"sync"`
	Outlets        map[string]int  `json:"outlets"`
	Employees      WorkforceStats  `json:"employees"`
	Products       int             `json:"products"`
	Ingredients    map[string]int  `json:"ingredients"`
	PurchaseOrders map[string]int  `json:"purchase_orders"`
	Distributions  map[string]int  `json:"distributions"`
	Candidates     map[string]int  `json:"candidates"`
	Promotions     map[string]int  `json:"promotions"`
	Assets         map[string]int  `json:"assets"`
	Checklists     map[string]int  `json:"checklists"`
	OpenShifts     int             `json:"open_shifts"`
	Finance        *FinanceSummary `json:"finance"`
}

type dashboardService struct {
	source  SnapshotSource
	finance FinanceService
	now     func() time.Time
}

func NewDashboardService(source SnapshotSource, finance FinanceService) DashboardService {
	return &dashboardService{source: source, finance: finance, now: time.Now}
}

func (s *dashboardService) GetDashboardStats(outletID *uint) *DashboardStats {
	snap := s.source.Snapshot()
	now := s.now()

	stats := &DashboardStats{
		Sync: SyncState{
			IsConnected:  snap.IsConnected,
			IsConfigured: snap.IsConfigured,
			Loading:      snap.Loading,
			Error:        snap.Error,
			Version:      snap.Version,
			FetchedAt:    snap.FetchedAt,
		},
		Outlets:        map[string]int{},
		Ingredients:    map[string]int{},
		PurchaseOrders: map[string]int{},
		Distributions:  map[string]int{},
		Candidates:     map[string]int{},
		Promotions:     map[string]int{},
		Assets:         map[string]int{},
		Checklists:     map[string]int{"completed": 0, "pending": 0},
		Products:       len(snap.Products),
	}

	for _, o := range snap.Outlets {
		if matchesOutlet(outletID, o.ID) {
			stats.Outlets[string(o.Status)]++
		}
	}
	for _, e := range snap.Employees {
		if !matchesOutlet(outletID, e.OutletID) {
			continue
		}
		if e.Status == model.EmployeeActive {
			stats.Employees.Active++
			stats.Employees.Payroll += e.Salary
		} else {
			stats.Employees.Inactive++
		}
	}
	for _, i := range snap.Ingredients {
		if matchesOutlet(outletID, i.OutletID) {
			stats.Ingredients[string(model.IngredientStatusFor(i.Stock, i.MinStock))]++
		}
	}
	for _, po := range snap.PurchaseOrders {
		if matchesOutlet(outletID, po.OutletID) {
			stats.PurchaseOrders[string(po.Status)]++
		}
	}
	for _, d := range snap.Distributions {
		if matchesOutlet(outletID, d.FromOutletID) || matchesOutlet(outletID, d.ToOutletID) {
			stats.Distributions[string(d.Status)]++
		}
	}
	for _, c := range snap.Candidates {
		if matchesOutlet(outletID, c.OutletID) {
			stats.Candidates[string(c.Status)]++
		}
	}
	// promotions are network-wide
	for _, p := range snap.Promotions {
		stats.Promotions[string(model.PromotionStatusAt(p.StartDate, p.EndDate, now))]++
	}
	for _, a := range snap.Assets {
		if matchesOutlet(outletID, a.OutletID) {
			stats.Assets[string(a.Status)]++
		}
	}
	for _, c := range snap.DailyChecklists {
		if !matchesOutlet(outletID, c.OutletID) {
			continue
		}
		if c.Completed {
			stats.Checklists["completed"]++
		} else {
			stats.Checklists["pending"]++
		}
	}
	for _, r := range snap.ShiftReports {
		if matchesOutlet(outletID, r.OutletID) && r.ClosingBalance == nil {
			stats.OpenShifts++
		}
	}
	if s.finance != nil {
		stats.Finance = s.finance.Summary(outletID)
	}
	return stats
}
