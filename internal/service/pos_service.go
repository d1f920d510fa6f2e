package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrPromotionInactive = errors.New("promotion is not active")
)

type POSService interface {
	Checkout(ctx context.Context, req *CheckoutRequest, actor Actor) (*Receipt, error)
}

type CartItem struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type CheckoutRequest struct {
	OutletID      uint                `json:"outlet_id" validate:"required"`
	CashierName   string              `json:"cashier_name"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,enum"`
	Items         []CartItem          `json:"items" validate:"required,min=1,dive"`
	PromotionID   *uint               `json:"promotion_id"`
}

type ReceiptLine struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// Receipt is the stored sale plus the priced cart it was computed from.
type Receipt struct {
	Sale     *model.Sale   `json:"sale"`
	Lines    []ReceiptLine `json:"lines"`
	Subtotal int64         `json:"subtotal"`
	Discount int64         `json:"discount"`
}

type posService struct {
	saleRepo      repository.SaleRepository
	productRepo   repository.ProductRepository
	promotionRepo repository.PromotionRepository
	outletRepo    repository.OutletRepository
	notifier      *Notifier
	now           func() time.Time
}

func NewPOSService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, promotionRepo repository.PromotionRepository, outletRepo repository.OutletRepository, notifier *Notifier) POSService {
	return &posService{
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		promotionRepo: promotionRepo,
		outletRepo:    outletRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

// Checkout prices the cart from the current menu and records one sale.
// The client never supplies the total.
func (s *posService) Checkout(ctx context.Context, req *CheckoutRequest, actor Actor) (*Receipt, error) {
	if req.CashierName == "" {
		req.CashierName = actor.Name
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.CashierName == "" {
		return nil, fmt.Errorf("%w: cashier name is required", ErrInvalidInput)
	}
	if err := outletExists(ctx, s.outletRepo, req.OutletID); err != nil {
		return nil, err
	}

	// 1. Price every line
	receipt := &Receipt{Lines: make([]ReceiptLine, 0, len(req.Items))}
	for _, item := range req.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: #%d", ErrProductNotFound, item.ProductID)
			}
			return nil, err
		}
		line := ReceiptLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Subtotal:  product.Price * int64(item.Quantity),
		}
		receipt.Lines = append(receipt.Lines, line)
		receipt.Subtotal += line.Subtotal
	}

	// 2. Apply promotion
	if req.PromotionID != nil {
		promo, err := s.promotionRepo.FindByID(ctx, *req.PromotionID)
		if err != nil {
			return nil, mapNotFound(err)
		}
		promo.Derive(s.now())
		if promo.Status != model.PromotionActive {
			return nil, fmt.Errorf("%w: '%s' is %s", ErrPromotionInactive, promo.Name, promo.Status)
		}
		receipt.Discount = discountFor(promo, receipt.Subtotal)
	}

	// 3. Record sale
	sale := &model.Sale{
		OutletID:      req.OutletID,
		CashierName:   req.CashierName,
		Total:         receipt.Subtotal - receipt.Discount,
		PaymentMethod: req.PaymentMethod,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	receipt.Sale = sale

	s.notifier.Changed(ctx, model.TableSales, event.OpInsert, sale.ID, actor,
		fmt.Sprintf("recorded sale of Rp%d via %s", sale.Total, sale.PaymentMethod))
	return receipt, nil
}

// discountFor never discounts more than the subtotal.
func discountFor(p *model.Promotion, subtotal int64) int64 {
	var d int64
	switch p.DiscountType {
	case model.DiscountPercentage:
		d = int64(math.Round(float64(subtotal) * p.DiscountValue / 100))
	case model.DiscountFixed:
		d = int64(math.Round(p.DiscountValue))
	}
	if d < 0 {
		return 0
	}
	if d > subtotal {
		return subtotal
	}
	return d
}
