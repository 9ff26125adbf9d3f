package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"perfume-shop-api/internal/cache"
	"perfume-shop-api/internal/dto"
	"perfume-shop-api/internal/model"
	"perfume-shop-api/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	// Bounds for the recent-orders limit query parameter.
	recentOrdersMin     = 1
	recentOrdersMax     = 20
	RecentOrdersDefault = 5

	recentDateFormat = "02 Jan 2006"
	recentTimeFormat = "03:04 PM"
)

type OrderQueryService interface {
	History(ctx context.Context, userID uint) ([]dto.OrderHistoryEntry, error)
	Detail(ctx context.Context, userID, orderID uint) (*dto.OrderHistoryEntry, error)

	// Recent returns the user's newest orders, at most limit entries with
	// limit clamped to [1, 20].
	Recent(ctx context.Context, userID uint, limit int) ([]dto.RecentOrder, error)
}

type orderQueryServiceImpl struct {
	orderRepo    repository.OrderRepository
	photoBaseURL string
	recentCache  *cache.RecentOrdersCache
}

func NewOrderQueryService(orderRepo repository.OrderRepository, photoBaseURL string, recentCache *cache.RecentOrdersCache) OrderQueryService {
	return &orderQueryServiceImpl{
		orderRepo:    orderRepo,
		photoBaseURL: strings.TrimRight(photoBaseURL, "/"),
		recentCache:  recentCache,
	}
}

func (s *orderQueryServiceImpl) History(ctx context.Context, userID uint) ([]dto.OrderHistoryEntry, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load orders for user %d: %w", userID, err)
	}

	entries := make([]dto.OrderHistoryEntry, 0, len(orders))
	for _, order := range orders {
		entry, err := s.historyEntry(ctx, &order)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}

func (s *orderQueryServiceImpl) Detail(ctx context.Context, userID, orderID uint) (*dto.OrderHistoryEntry, error) {
	order, err := s.orderRepo.FindForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	return s.historyEntry(ctx, order)
}

func (s *orderQueryServiceImpl) historyEntry(ctx context.Context, order *model.Order) (*dto.OrderHistoryEntry, error) {
	rows, err := s.orderRepo.ItemsForOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load items for order %d: %w", order.ID, err)
	}

	items := make([]dto.OrderItemDetail, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.OrderItemDetail{
			PerfumeID: row.PerfumeID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			Size:      row.Size,
			UnitPrice: row.UnitPrice,
			Subtotal:  row.UnitPrice * float64(row.Quantity),
		})
	}

	return &dto.OrderHistoryEntry{
		ID:                order.ID,
		Number:            order.Number,
		TotalAmount:       order.TotalAmount,
		Status:            order.Status,
		PaymentMethod:     order.PaymentMethod,
		CreatedAt:         order.CreatedAt.Format(time.RFC3339),
		ShippingFirstName: order.ShippingFirstName,
		ShippingLastName:  order.ShippingLastName,
		ShippingCity:      order.ShippingCity,
		ShippingAddress:   order.ShippingAddress,
		ShippingZip:       order.ShippingZip,
		Items:             items,
	}, nil
}

func (s *orderQueryServiceImpl) Recent(ctx context.Context, userID uint, limit int) ([]dto.RecentOrder, error) {
	limit = clampRecentLimit(limit)

	// The cache holds the full window; slice it to the requested limit.
	if cached, ok := s.recentCache.Get(ctx, userID); ok {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}

	orders, err := s.orderRepo.FindRecentByUser(ctx, userID, recentOrdersMax)
	if err != nil {
		return nil, fmt.Errorf("load recent orders for user %d: %w", userID, err)
	}

	summaries := make([]dto.RecentOrder, 0, len(orders))
	for _, order := range orders {
		rows, err := s.orderRepo.ItemsForOrder(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("load items for order %d: %w", order.ID, err)
		}

		items := make([]dto.RecentOrderItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, dto.RecentOrderItem{
				Name:     row.Name,
				Quantity: row.Quantity,
				Photo:    s.photoURL(row.PerfumeID),
			})
		}

		grandTotal := decimal.NewFromFloat(order.TotalAmount).
			Add(decimal.NewFromFloat(order.ShippingCost)).
			Add(decimal.NewFromFloat(order.TaxAmount)).
			Round(2)

		summaries = append(summaries, dto.RecentOrder{
			OrderID:    order.ID,
			Date:       order.CreatedAt.Format(recentDateFormat),
			Time:       order.CreatedAt.Format(recentTimeFormat),
			City:       order.ShippingCity,
			Status:     order.Status,
			GrandTotal: grandTotal.InexactFloat64(),
			Items:      items,
			ItemsCount: len(items),
		})
	}

	s.recentCache.Set(ctx, userID, summaries)

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (s *orderQueryServiceImpl) photoURL(perfumeID uint) string {
	return fmt.Sprintf("%s/perfumes/photo/%d", s.photoBaseURL, perfumeID)
}

func clampRecentLimit(limit int) int {
	if limit < recentOrdersMin {
		return recentOrdersMin
	}
	if limit > recentOrdersMax {
		return recentOrdersMax
	}
	return limit
}
