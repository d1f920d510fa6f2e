package service

import (
	"context"
	"fmt"
	"time"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

type MaintenanceService interface {
	CreateAsset(ctx context.Context, req *CreateAssetRequest, actor Actor) (*model.Asset, error)
	SetAssetStatus(ctx context.Context, id uint, req *AssetStatusRequest, actor Actor) (*model.Asset, error)
}

type CreateAssetRequest struct {
	Name            string            `json:"name" validate:"required"`
	OutletID        uint              `json:"outlet_id" validate:"required"`
	Status          model.AssetStatus `json:"status" validate:"omitempty,enum"`
	LastMaintenance time.Time         `json:"last_maintenance" validate:"required"`
}

type AssetStatusRequest struct {
	Status model.AssetStatus `json:"status" validate:"required,enum"`
}

type maintenanceService struct {
	assetRepo  repository.AssetRepository
	outletRepo repository.OutletRepository
	notifier   *Notifier
	now        func() time.Time
}

func NewMaintenanceService(assetRepo repository.AssetRepository, outletRepo repository.OutletRepository, notifier *Notifier) MaintenanceService {
	return &maintenanceService{assetRepo: assetRepo, outletRepo: outletRepo, notifier: notifier, now: time.Now}
}

func (s *maintenanceService) CreateAsset(ctx context.Context, req *CreateAssetRequest, actor Actor) (*model.Asset, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}

	a := &model.Asset{Name: req.Name, OutletID: req.OutletID, Status: req.Status, LastMaintenance: req.LastMaintenance}
	if a.Status == "" {
		a.Status = model.AssetInUse
	}
	if err := s.assetRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableAssets, event.OpInsert, a.ID, actor,
		fmt.Sprintf("registered asset '%s'", a.Name))
	return a, nil
}

// SetAssetStatus accepts any status and stamps the maintenance date with now.
func (s *maintenanceService) SetAssetStatus(ctx context.Context, id uint, req *AssetStatusRequest, actor Actor) (*model.Asset, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	a, err := s.assetRepo.Update(ctx, id, model.AssetUpdate{Status: &req.Status, LastMaintenance: &now})
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.notifier.Changed(ctx, model.TableAssets, event.OpUpdate, a.ID, actor,
		fmt.Sprintf("set asset '%s' to %s", a.Name, a.Status))
	return a, nil
}
