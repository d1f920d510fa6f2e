package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

var (
	ErrInvalidWindow   = errors.New("promotion ends before it starts")
	ErrPercentageRange = errors.New("percentage discount must be between 0 and 100")
)

type PromotionService interface {
	CreatePromotion(ctx context.Context, req *CreatePromotionRequest, actor Actor) (*model.Promotion, error)
}

type CreatePromotionRequest struct {
	Name          string             `json:"name" validate:"required"`
	DiscountType  model.DiscountType `json:"discount_type" validate:"required,enum"`
	DiscountValue *float64           `json:"discount_value" validate:"required,gte=0"`
	StartDate     time.Time          `json:"start_date" validate:"required"`
	EndDate       time.Time          `json:"end_date" validate:"required"`
}

type promotionService struct {
	promotionRepo repository.PromotionRepository
	notifier      *Notifier
}

func NewPromotionService(promotionRepo repository.PromotionRepository, notifier *Notifier) PromotionService {
	return &promotionService{promotionRepo: promotionRepo, notifier: notifier}
}

// CreatePromotion stores the window only; status is derived whenever the row is read.
func (s *promotionService) CreatePromotion(ctx context.Context, req *CreatePromotionRequest, actor Actor) (*model.Promotion, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidWindow
	}
	if req.DiscountType == model.DiscountPercentage && *req.DiscountValue > 100 {
		return nil, ErrPercentageRange
	}

	p := &model.Promotion{
		Name:          req.Name,
		DiscountType:  req.DiscountType,
		DiscountValue: *req.DiscountValue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	if err := s.promotionRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.notifier.Changed(ctx, model.TablePromotions, event.OpInsert, p.ID, actor,
		fmt.Sprintf("scheduled promotion '%s' (%s)", p.Name, p.Status))
	return p, nil
}
