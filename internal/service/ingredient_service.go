package service

import (
	"context"
	"fmt"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

type IngredientService interface {
	CreateIngredient(ctx context.Context, req *CreateIngredientRequest, actor Actor) (*model.Ingredient, error)
	UpdateStock(ctx context.Context, id uint, req *UpdateStockRequest, actor Actor) (*model.Ingredient, error)
}

type CreateIngredientRequest struct {
	Name     string   `json:"name" validate:"required"`
	OutletID uint     `json:"outlet_id" validate:"required"`
	Stock    *float64 `json:"stock" validate:"required,gte=0"`
	Unit     string   `json:"unit" validate:"required"`
	MinStock *float64 `json:"min_stock" validate:"required,gte=0"`
}

type UpdateStockRequest struct {
	Stock    *float64 `json:"stock" validate:"required,gte=0"`
	MinStock *float64 `json:"min_stock" validate:"omitempty,gte=0"`
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
	outletRepo     repository.OutletRepository
	notifier       *Notifier
}

func NewIngredientService(ingredientRepo repository.IngredientRepository, outletRepo repository.OutletRepository, notifier *Notifier) IngredientService {
	return &ingredientService{ingredientRepo: ingredientRepo, outletRepo: outletRepo, notifier: notifier}
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req *CreateIngredientRequest, actor Actor) (*model.Ingredient, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}

	ing := &model.Ingredient{
		Name:     req.Name,
		OutletID: req.OutletID,
		Stock:    *req.Stock,
		Unit:     req.Unit,
		MinStock: *req.MinStock,
	}
	if err := s.ingredientRepo.Create(ctx, ing); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableIngredients, event.OpInsert, ing.ID, actor,
		fmt.Sprintf("added ingredient '%s' (%g %s)", ing.Name, ing.Stock, ing.Unit))
	return ing, nil
}

func (s *ingredientService) UpdateStock(ctx context.Context, id uint, req *UpdateStockRequest, actor Actor) (*model.Ingredient, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ing, err := s.ingredientRepo.Update(ctx, id, model.IngredientUpdate{Stock: req.Stock, MinStock: req.MinStock})
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.notifier.Changed(ctx, model.TableIngredients, event.OpUpdate, ing.ID, actor,
		fmt.Sprintf("set stock of '%s' to %g %s (%s)", ing.Name, ing.Stock, ing.Unit, ing.Status))
	return ing, nil
}
