package service

import (
	"context"
	"fmt"
	"io"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/realtime"
	"resto-erp-ws/internal/repository"

	"github.com/xuri/excelize/v2"
)

// SnapshotSource is the read side shared by reporting services.
type SnapshotSource interface {
	Snapshot() *realtime.Snapshot
}

type FinanceService interface {
	CreateCashFlow(ctx context.Context, req *CreateCashFlowRequest, actor Actor) (*model.CashFlow, error)
	Summary(outletID *uint) *FinanceSummary
	Export(w io.Writer, outletID *uint) error
}

type CreateCashFlowRequest struct {
	OutletID    uint               `json:"outlet_id" validate:"required"`
	Type        model.CashFlowType `json:"type" validate:"required,enum"`
	Category    string             `json:"category" validate:"required"`
	Amount      *int64             `json:"amount" validate:"required,gt=0"`
	Description string             `json:"description" validate:"required"`
}

type FinanceSummary struct {
	OutletID   *uint            `json:"outlet_id,omitempty"`
	Inflow     int64            `json:"inflow"`
	Outflow    int64            `json:"outflow"`
	Net        int64            `json:"net"`
	SalesTotal int64            `json:"sales_total"`
	SalesCount int              `json:"sales_count"`
	ByCategory map[string]int64 `json:"by_category"`
	ByPayment  map[string]int64 `json:"by_payment"`
}

type financeService struct {
	cashFlowRepo repository.CashFlowRepository
	outletRepo   repository.OutletRepository
	source       SnapshotSource
	notifier     *Notifier
}

func NewFinanceService(cashFlowRepo repository.CashFlowRepository, outletRepo repository.OutletRepository, source SnapshotSource, notifier *Notifier) FinanceService {
	return &financeService{cashFlowRepo: cashFlowRepo, outletRepo: outletRepo, source: source, notifier: notifier}
}

func (s *financeService) CreateCashFlow(ctx context.Context, req *CreateCashFlowRequest, actor Actor) (*model.CashFlow, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}

	entry := &model.CashFlow{
		OutletID:    req.OutletID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      *req.Amount,
		Description: req.Description,
	}
	if err := s.cashFlowRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableCashFlow, event.OpInsert, entry.ID, actor,
		fmt.Sprintf("booked %s of Rp%d (%s)", entry.Type, entry.Amount, entry.Category))
	return entry, nil
}

func matchesOutlet(filter *uint, id uint) bool {
	return filter == nil || *filter == id
}

// Summary totals the current snapshot; inflow is positive and outflow negative in ByCategory.
func (s *financeService) Summary(outletID *uint) *FinanceSummary {
	snap := s.source.Snapshot()
	sum := &FinanceSummary{
		OutletID:   outletID,
		ByCategory: map[string]int64{},
		ByPayment:  map[string]int64{},
	}

	for _, cf := range snap.CashFlow {
		if !matchesOutlet(outletID, cf.OutletID) {
			continue
		}
		switch cf.Type {
		case model.CashInflow:
			sum.Inflow += cf.Amount
			sum.ByCategory[cf.Category] += cf.Amount
		case model.CashOutflow:
			sum.Outflow += cf.Amount
			sum.ByCategory[cf.Category] -= cf.Amount
		}
	}
	sum.Net = sum.Inflow - sum.Outflow

	for _, sale := range snap.Sales {
		if !matchesOutlet(outletID, sale.OutletID) {
			continue
		}
		sum.SalesTotal += sale.Total
		sum.SalesCount++
		sum.ByPayment[string(sale.PaymentMethod)] += sale.Total
	}
	return sum
}

const (
	cashFlowSheet = "Cash Flow"
	salesSheet    = "Sales"
)

// Export writes the cash flow and sales journals of the current snapshot as xlsx.
func (s *financeService) Export(w io.Writer, outletID *uint) error {
	snap := s.source.Snapshot()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cashFlowSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(cashFlowSheet, "A1", &[]interface{}{"ID", "Date", "Outlet", "Type", "Category", "Amount", "Description"}); err != nil {
		return err
	}
	row := 2
	for _, cf := range snap.CashFlow {
		if !matchesOutlet(outletID, cf.OutletID) {
			continue
		}
		cell := fmt.Sprintf("A%d", row)
		values := []interface{}{cf.ID, cf.CreatedAt, cf.OutletID, string(cf.Type), cf.Category, cf.Amount, cf.Description}
		if err := f.SetSheetRow(cashFlowSheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	if _, err := f.NewSheet(salesSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(salesSheet, "A1", &[]interface{}{"ID", "Date", "Outlet", "Cashier", "Payment", "Total"}); err != nil {
		return err
	}
	row = 2
	for _, sale := range snap.Sales {
		if !matchesOutlet(outletID, sale.OutletID) {
			continue
		}
		cell := fmt.Sprintf("A%d", row)
		values := []interface{}{sale.ID, sale.CreatedAt, sale.OutletID, sale.CashierName, string(sale.PaymentMethod), sale.Total}
		if err := f.SetSheetRow(salesSheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	_, err := f.WriteTo(w)
	return err
}
