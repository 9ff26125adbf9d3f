package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"perfume-shop-api/internal/cache"
	"perfume-shop-api/internal/dto"
	"perfume-shop-api/internal/model"
	"perfume-shop-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CheckoutService interface {
	// Checkout places an order for the user as a single atomic unit: order
	// row, per-item stock check-and-deduct, masked payment details, cart
	// clearing and the final status update all commit or roll back together.
	Checkout(ctx context.Context, userID uint, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	perfumeRepo repository.PerfumeRepository
	paymentRepo repository.PaymentDetailRepository
	cartRepo    repository.CartRepository
	recentCache *cache.RecentOrdersCache
}

func NewCheckoutService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	perfumeRepo repository.PerfumeRepository,
	paymentRepo repository.PaymentDetailRepository,
	cartRepo repository.CartRepository,
	recentCache *cache.RecentOrdersCache,
) CheckoutService {
	return &checkoutServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		perfumeRepo: perfumeRepo,
		paymentRepo: paymentRepo,
		cartRepo:    cartRepo,
		recentCache: recentCache,
	}
}

// orderItemInput is a checkout item after coercion of its loosely typed
// fields.
type orderItemInput struct {
	PerfumeID uint
	Quantity  int
	Size      *string
	UnitPrice float64
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID uint, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	method, err := validateCheckout(req)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		Number:            uuid.NewString(),
		UserID:            userID,
		TotalAmount:       *req.TotalPrice,
		ShippingCost:      *req.ShippingCost,
		TaxAmount:         *req.Tax,
		ShippingFirstName: strings.TrimSpace(req.Shipping.FirstName),
		ShippingLastName:  strings.TrimSpace(req.Shipping.LastName),
		ShippingEmail:     strings.ToLower(strings.TrimSpace(req.Shipping.Email)),
		ShippingPhone:     strings.TrimSpace(req.Shipping.Phone),
		ShippingAddress:   strings.TrimSpace(req.Shipping.Address),
		ShippingCity:      strings.TrimSpace(req.Shipping.City),
		ShippingState:     strings.TrimSpace(req.Shipping.State),
		ShippingZip:       strings.TrimSpace(req.Shipping.Zip),
		PaymentMethod:     method,
		Status:            model.OrderStatusPending,
	}

	finalStatus := model.OrderStatusCODPending
	if method == model.PaymentMethodCard {
		finalStatus = model.OrderStatusPaid
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, raw := range req.Items {
			item, err := parseCheckoutItem(raw)
			if err != nil {
				return err
			}
			if item.Quantity <= 0 {
				return validationErrorf("Quantity must be positive")
			}

			perfume, err := s.perfumeRepo.FindAvailable(ctx, tx, item.PerfumeID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundErrorf("Perfume ID %d not found or unavailable", item.PerfumeID)
				}
				return fmt.Errorf("load perfume %d: %w", item.PerfumeID, err)
			}
			if perfume.Quantity < item.Quantity {
				return conflictErrorf("Only %d left of %s", perfume.Quantity, perfume.Name)
			}

			if err := s.orderRepo.CreateItem(ctx, tx, &model.OrderItem{
				OrderID:   order.ID,
				PerfumeID: item.PerfumeID,
				Quantity:  item.Quantity,
				Size:      item.Size,
				UnitPrice: item.UnitPrice,
			}); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			deducted, err := s.perfumeRepo.DeductStock(ctx, tx, item.PerfumeID, item.Quantity)
			if err != nil {
				return fmt.Errorf("deduct stock for perfume %d: %w", item.PerfumeID, err)
			}
			if !deducted {
				// A concurrent checkout took the stock between our read and
				// the guarded update. The quantity read above is stale now,
				// so the message names no number.
				return conflictErrorf("Not enough stock left of %s", perfume.Name)
			}
		}

		if method == model.PaymentMethodCard {
			number := strings.ReplaceAll(req.CardDetails.CardNumber, " ", "")
			if err := s.paymentRepo.Create(ctx, tx, &model.PaymentDetail{
				OrderID:        order.ID,
				PaymentMethod:  method,
				CardLast4:      number[len(number)-4:],
				CardHolderName: req.CardDetails.CardName,
				Expiry:         req.CardDetails.Expiry,
			}); err != nil {
				return fmt.Errorf("store payment detail: %w", err)
			}
		}

		if err := s.cartRepo.ClearForUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, finalStatus); err != nil {
			return fmt.Errorf("finalize order status: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recentCache.Invalidate(ctx, userID)

	total := decimal.NewFromFloat(*req.TotalPrice).
		Add(decimal.NewFromFloat(*req.ShippingCost)).
		Add(decimal.NewFromFloat(*req.Tax)).
		Round(2)

	return &dto.CheckoutResponse{
		Message:       "Order placed successfully!",
		OrderID:       order.ID,
		OrderNumber:   order.Number,
		Status:        finalStatus,
		PaymentMethod: method,
		Total:         total.InexactFloat64(),
	}, nil
}

// parseCheckoutItem coerces the loosely typed item fields the storefront
// sends (numbers or numeric strings) into their persisted types.
func parseCheckoutItem(raw dto.CheckoutItem) (orderItemInput, error) {
	perfumeID, err := coerceInt(raw.PerfumeID)
	if err != nil || perfumeID <= 0 {
		return orderItemInput{}, validationErrorf("Invalid item data format")
	}

	quantity, err := coerceInt(raw.Quantity)
	if err != nil {
		return orderItemInput{}, validationErrorf("Invalid item data format")
	}

	price, err := coerceFloat(raw.Price)
	if err != nil {
		return orderItemInput{}, validationErrorf("Invalid item data format")
	}

	var size *string
	if s, ok := raw.SelectedSize.(string); ok && s != "" {
		size = &s
	}

	return orderItemInput{
		PerfumeID: uint(perfumeID),
		Quantity:  int(quantity),
		Size:      size,
		UnitPrice: price,
	}, nil
}

func coerceInt(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}

func coerceFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
