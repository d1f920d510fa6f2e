package service

import (
	"context"
	"errors"
	"fmt"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

var ErrSupplierNotFound = errors.New("supplier not found")

type PurchasingService interface {
	CreateSupplier(ctx context.Context, req *CreateSupplierRequest, actor Actor) (*model.Supplier, error)
	CreatePurchaseOrder(ctx context.Context, req *CreatePurchaseOrderRequest, actor Actor) (*model.PurchaseOrder, error)
	ApprovePurchaseOrder(ctx context.Context, id uint, actor Actor) (*model.PurchaseOrder, error)
	RejectPurchaseOrder(ctx context.Context, id uint, actor Actor) (*model.PurchaseOrder, error)
}

type CreateSupplierRequest struct {
	Name    string   `json:"name" validate:"required"`
	Contact string   `json:"contact" validate:"required"`
	Rating  *float64 `json:"rating" validate:"required,gte=0,lte=5"`
}

type CreatePurchaseOrderRequest struct {
	OutletID   uint   `json:"outlet_id" validate:"required"`
	SupplierID uint   `json:"supplier_id" validate:"required"`
	Total      *int64 `json:"total" validate:"required,gte=0"`
}

type purchasingService struct {
	supplierRepo repository.SupplierRepository
	orderRepo    repository.PurchaseOrderRepository
	outletRepo   repository.OutletRepository
	notifier     *Notifier
}

func NewPurchasingService(supplierRepo repository.SupplierRepository, orderRepo repository.PurchaseOrderRepository, outletRepo repository.OutletRepository, notifier *Notifier) PurchasingService {
	return &purchasingService{
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		outletRepo:   outletRepo,
		notifier:     notifier,
	}
}

func (s *purchasingService) CreateSupplier(ctx context.Context, req *CreateSupplierRequest, actor Actor) (*model.Supplier, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	sup := &model.Supplier{Name: req.Name, Contact: req.Contact, Rating: *req.Rating}
	if err := s.supplierRepo.Create(ctx, sup); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableSuppliers, event.OpInsert, sup.ID, actor,
		fmt.Sprintf("registered supplier '%s'", sup.Name))
	return sup, nil
}

// CreatePurchaseOrder always starts the order as Pending.
func (s *purchasingService) CreatePurchaseOrder(ctx context.Context, req *CreatePurchaseOrderRequest, actor Actor) (*model.PurchaseOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}
	if _, err := s.supplierRepo.FindByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: #%d", ErrSupplierNotFound, req.SupplierID)
		}
		return nil, err
	}

	po := &model.PurchaseOrder{
		OutletID:   req.OutletID,
		SupplierID: req.SupplierID,
		Total:      *req.Total,
		Status:     model.POPending,
	}
	if err := s.orderRepo.Create(ctx, po); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TablePurchaseOrders, event.OpInsert, po.ID, actor,
		fmt.Sprintf("raised purchase order #%d for Rp%d", po.ID, po.Total))
	return po, nil
}

func (s *purchasingService) ApprovePurchaseOrder(ctx context.Context, id uint, actor Actor) (*model.PurchaseOrder, error) {
	return s.decide(ctx, id, model.POApproved, actor)
}

func (s *purchasingService) RejectPurchaseOrder(ctx context.Context, id uint, actor Actor) (*model.PurchaseOrder, error) {
	return s.decide(ctx, id, model.PORejected, actor)
}

func (s *purchasingService) decide(ctx context.Context, id uint, to model.PurchaseOrderStatus, actor Actor) (*model.PurchaseOrder, error) {
	po, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !po.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: purchase order #%d is %s", ErrInvalidTransition, id, po.Status)
	}

	from := po.Status
	po, err = s.orderRepo.UpdateWhere(ctx, id, map[string]interface{}{"status": from}, model.PurchaseOrderUpdate{Status: &to})
	if err != nil {
		return nil, mapConflict(err, fmt.Errorf("%w: purchase order #%d is no longer %s", ErrInvalidTransition, id, from))
	}

	s.notifier.Changed(ctx, model.TablePurchaseOrders, event.OpUpdate, po.ID, actor,
		fmt.Sprintf("marked purchase order #%d %s", po.ID, po.Status))
	return po, nil
}
