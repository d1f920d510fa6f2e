package service

import (
	"context"
	"fmt"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest, actor Actor) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest, actor Actor) (*model.Product, error)
}

type CreateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Price    *int64 `json:"price" validate:"required,gte=0"`
}

type UpdateProductRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Category *string `json:"category" validate:"omitempty,min=1"`
	Price    *int64  `json:"price" validate:"omitempty,gte=0"`
}

type productService struct {
	productRepo repository.ProductRepository
	notifier    *Notifier
}

func NewProductService(productRepo repository.ProductRepository, notifier *Notifier) ProductService {
	return &productService{productRepo: productRepo, notifier: notifier}
}

func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest, actor Actor) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product := &model.Product{Name: req.Name, Category: req.Category, Price: *req.Price}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TableProducts, event.OpInsert, product.ID, actor,
		fmt.Sprintf("added menu item '%s'", product.Name))
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest, actor Actor) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.Update(ctx, id, model.ProductUpdate{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.notifier.Changed(ctx, model.TableProducts, event.OpUpdate, product.ID, actor,
		fmt.Sprintf("updated menu item '%s'", product.Name))
	return product, nil
}
