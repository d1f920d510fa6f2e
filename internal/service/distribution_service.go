package service

import (
	"context"
	"errors"
	"fmt"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

var ErrSameOutlet = errors.New("source and destination outlet must differ")

type DistributionService interface {
	CreateTransfer(ctx context.Context, req *CreateTransferRequest, actor Actor) (*model.Distribution, error)
	DeliverTransfer(ctx context.Context, id uint, actor Actor) (*model.Distribution, error)
}

type CreateTransferRequest struct {
	FromOutletID   uint     `json:"from_outlet_id" validate:"required"`
	ToOutletID     uint     `json:"to_outlet_id" validate:"required"`
	IngredientName string   `json:"ingredient_name" validate:"required"`
	Quantity       *float64 `json:"quantity" validate:"required,gt=0"`
}

type distributionService struct {
	distributionRepo repository.DistributionRepository
	outletRepo       repository.OutletRepository
	notifier         *Notifier
}

func NewDistributionService(distributionRepo repository.DistributionRepository, outletRepo repository.OutletRepository, notifier *Notifier) DistributionService {
	return &distributionService{distributionRepo: distributionRepo, outletRepo: outletRepo, notifier: notifier}
}

func (s *distributionService) CreateTransfer(ctx context.Context, req *CreateTransferRequest, actor Actor) (*model.Distribution, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.FromOutletID == req.ToOutletID {
		return nil, ErrSameOutlet
	}
	for _, id := range []uint{req.FromOutletID, req.ToOutletID} {
		if err := outletExists(ctx, s.outletRepo, id); err != nil {
			return nil, err
		}
	}

	d := &model.Distribution{
		FromOutletID:   req.FromOutletID,
		ToOutletID:     req.ToOutletID,
		IngredientName: req.IngredientName,
		Quantity:       *req.Quantity,
		Status:         model.DistributionPending,
	}
	if err := s.distributionRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableDistributions, event.OpInsert, d.ID, actor,
		fmt.Sprintf("sent %g %s from outlet #%d to #%d", d.Quantity, d.IngredientName, d.FromOutletID, d.ToOutletID))
	return d, nil
}

func (s *distributionService) DeliverTransfer(ctx context.Context, id uint, actor Actor) (*model.Distribution, error) {
	d, err := s.distributionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	to := model.DistributionDelivered
	if !d.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: transfer #%d is %s", ErrInvalidTransition, id, d.Status)
	}

	from := d.Status
	d, err = s.distributionRepo.UpdateWhere(ctx, id, map[string]interface{}{"status": from}, model.DistributionUpdate{Status: &to})
	if err != nil {
		return nil, mapConflict(err, fmt.Errorf("%w: transfer #%d is no longer %s", ErrInvalidTransition, id, from))
	}

	s.notifier.Changed(ctx, model.TableDistributions, event.OpUpdate, d.ID, actor,
		fmt.Sprintf("confirmed delivery of transfer #%d", d.ID))
	return d, nil
}
