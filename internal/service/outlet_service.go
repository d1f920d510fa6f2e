package service

import (
	"context"
	"fmt"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

type OutletService interface {
	CreateOutlet(ctx context.Context, req *CreateOutletRequest, actor Actor) (*model.Outlet, error)
	UpdateOutlet(ctx context.Context, id uint, req *UpdateOutletRequest, actor Actor) (*model.Outlet, error)
	DeleteOutlet(ctx context.Context, id uint, actor Actor) error
}

type CreateOutletRequest struct {
	Name    string             `json:"name" validate:"required"`
	Area    string             `json:"area" validate:"required"`
	Address string             `json:"address" validate:"required"`
	Status  model.OutletStatus `json:"status" validate:"omitempty,enum"`
}

type UpdateOutletRequest struct {
	Name    *string             `json:"name" validate:"omitempty,min=1"`
	Area    *string             `json:"area" validate:"omitempty,min=1"`
	Address *string             `json:"address" validate:"omitempty,min=1"`
	Status  *model.OutletStatus `json:"status" validate:"omitempty,enum"`
}

type outletService struct {
	outletRepo repository.OutletRepository
	notifier   *Notifier
}

func NewOutletService(outletRepo repository.OutletRepository, notifier *Notifier) OutletService {
	return &outletService{outletRepo: outletRepo, notifier: notifier}
}

func (s *outletService) CreateOutlet(ctx context.Context, req *CreateOutletRequest, actor Actor) (*model.Outlet, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	outlet := &model.Outlet{Name: req.Name, Area: req.Area, Address: req.Address, Status: req.Status}
	if outlet.Status == "" {
		outlet.Status = model.OutletOpen
	}
	if err := s.outletRepo.Create(ctx, outlet); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableOutlets, event.OpInsert, outlet.ID, actor,
		fmt.Sprintf("opened outlet '%s'", outlet.Name))
	return outlet, nil
}

func (s *outletService) UpdateOutlet(ctx context.Context, id uint, req *UpdateOutletRequest, actor Actor) (*model.Outlet, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	outlet, err := s.outletRepo.Update(ctx, id, model.OutletUpdate{
		Name:    req.Name,
		Area:    req.Area,
		Address: req.Address,
		Status:  req.Status,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.notifier.Changed(ctx, model.TableOutlets, event.OpUpdate, outlet.ID, actor,
		fmt.Sprintf("updated outlet '%s'", outlet.Name))
	return outlet, nil
}

func (s *outletService) DeleteOutlet(ctx context.Context, id uint, actor Actor) error {
	if err := s.outletRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	s.notifier.Changed(ctx, model.TableOutlets, event.OpDelete, id, actor,
		fmt.Sprintf("removed outlet #%d", id))
	return nil
}
