package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"perfume-shop-api/internal/model"
	"perfume-shop-api/internal/repository"

	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, userID uint, createdAt time.Time, total, shipping, tax float64, items ...model.OrderItem) uint {
	t.Helper()

	order := model.Order{
		Number:            fmt.Sprintf("ord-%d-%s", userID, createdAt.Format("0102150405")),
		UserID:            userID,
		TotalAmount:       total,
		ShippingCost:      shipping,
		TaxAmount:         tax,
		ShippingFirstName: "Ada",
		ShippingLastName:  "Lovelace",
		ShippingEmail:     "ada@example.com",
		ShippingPhone:     "555-0100",
		ShippingAddress:   "12 Analytical Way",
		ShippingCity:      "London",
		ShippingState:     "LDN",
		ShippingZip:       "EC1A",
		PaymentMethod:     model.PaymentMethodCard,
		Status:            model.OrderStatusPaid,
		CreatedAt:         createdAt,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("seed order item: %v", err)
		}
	}

	return order.ID
}

func TestHistoryNewestFirstWithItems(t *testing.T) {
	db := newTestDB(t)
	seedPerfume(t, db, 1, "Amber Noir", 89.99, 10, true)
	seedPerfume(t, db, 2, "Citrus Bloom", 64.50, 10, true)

	older := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)

	seedOrder(t, db, 7, older, 64.50, 5, 4,
		model.OrderItem{PerfumeID: 2, Quantity: 1, UnitPrice: 64.50})
	newID := seedOrder(t, db, 7, newer, 179.98, 5, 14.40,
		model.OrderItem{PerfumeID: 1, Quantity: 2, UnitPrice: 89.99})
	seedOrder(t, db, 99, newer, 10, 0, 0) // other user, must not leak

	svc := NewOrderQueryService(repository.NewOrderRepository(db), "http://localhost:8080", nil)

	entries, err := svc.History(testCtx, 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ID != newID {
		t.Errorf("first entry = order %d, want newest %d", entries[0].ID, newID)
	}

	items := entries[0].Items
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Name != "Amber Noir" {
		t.Errorf("item name = %q", items[0].Name)
	}
	if items[0].Subtotal != 179.98 {
		t.Errorf("subtotal = %v, want 179.98", items[0].Subtotal)
	}
	if entries[0].CreatedAt != newer.Format(time.RFC3339) {
		t.Errorf("created at = %q", entries[0].CreatedAt)
	}
}

func TestHistoryEmpty(t *testing.T) {
	db := newTestDB(t)

	svc := NewOrderQueryService(repository.NewOrderRepository(db), "http://localhost:8080", nil)
	entries, err := svc.History(testCtx, 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

func TestDetailScopedToUser(t *testing.T) {
	db := newTestDB(t)
	seedPerfume(t, db, 1, "Amber Noir", 89.99, 10, true)

	createdAt := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	orderID := seedOrder(t, db, 7, createdAt, 89.99, 5, 7.2,
		model.OrderItem{PerfumeID: 1, Quantity: 1, UnitPrice: 89.99})

	svc := NewOrderQueryService(repository.NewOrderRepository(db), "http://localhost:8080", nil)

	entry, err := svc.Detail(testCtx, 7, orderID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if entry.ID != orderID {
		t.Errorf("entry id = %d, want %d", entry.ID, orderID)
	}

	// Another user must not see the order.
	if _, err := svc.Detail(testCtx, 8, orderID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("cross-user detail err = %v, want record not found", err)
	}
}

func TestRecentSummaries(t *testing.T) {
	db := newTestDB(t)
	seedPerfume(t, db, 1, "Amber Noir", 89.99, 10, true)
	seedPerfume(t, db, 2, "Citrus Bloom", 64.50, 10, true)

	createdAt := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	orderID := seedOrder(t, db, 7, createdAt, 154.49, 5.005, 12.35,
		model.OrderItem{PerfumeID: 1, Quantity: 1, UnitPrice: 89.99},
		model.OrderItem{PerfumeID: 2, Quantity: 2, UnitPrice: 64.50})

	svc := NewOrderQueryService(repository.NewOrderRepository(db), "http://localhost:8080/", nil)

	summaries, err := svc.Recent(testCtx, 7, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}

	got := summaries[0]
	if got.OrderID != orderID {
		t.Errorf("order id = %d, want %d", got.OrderID, orderID)
	}
	if got.Date != "05 Mar 2026" {
		t.Errorf("date = %q, want 05 Mar 2026", got.Date)
	}
	if got.Time != "02:30 PM" {
		t.Errorf("time = %q, want 02:30 PM", got.Time)
	}
	if got.City != "London" {
		t.Errorf("city = %q", got.City)
	}
	// 154.49 + 5.005 + 12.35 rounds half up to 171.85.
	if got.GrandTotal != 171.85 {
		t.Errorf("grand total = %v, want 171.85", got.GrandTotal)
	}
	if got.ItemsCount != 2 {
		t.Errorf("items count = %d, want 2", got.ItemsCount)
	}
	// Trailing slash on the base URL must not produce a double slash.
	if got.Items[0].Photo != "http://localhost:8080/perfumes/photo/1" {
		t.Errorf("photo = %q", got.Items[0].Photo)
	}
}

func TestRecentLimitClamped(t *testing.T) {
	db := newTestDB(t)
	seedPerfume(t, db, 1, "Amber Noir", 89.99, 100, true)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedOrder(t, db, 7, base.Add(time.Duration(i)*time.Hour), 89.99, 5, 7.2,
			model.OrderItem{PerfumeID: 1, Quantity: 1, UnitPrice: 89.99})
	}

	svc := NewOrderQueryService(repository.NewOrderRepository(db), "http://localhost:8080", nil)

	tests := []struct {
		limit int
		want  int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{5, 5},
		{20, 20},
		{21, 20},
		{100, 20},
	}
	for _, tt := range tests {
		summaries, err := svc.Recent(testCtx, 7, tt.limit)
		if err != nil {
			t.Fatalf("recent limit %d: %v", tt.limit, err)
		}
		if len(summaries) != tt.want {
			t.Errorf("limit %d: got %d summaries, want %d", tt.limit, len(summaries), tt.want)
		}
	}
}

func TestRecentNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedPerfume(t, db, 1, "Amber Noir", 89.99, 100, true)

	older := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	seedOrder(t, db, 7, older, 89.99, 5, 7.2)
	newID := seedOrder(t, db, 7, newer, 89.99, 5, 7.2)

	svc := NewOrderQueryService(repository.NewOrderRepository(db), "http://localhost:8080", nil)

	summaries, err := svc.Recent(testCtx, 7, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	if summaries[0].OrderID != newID {
		t.Errorf("first summary = order %d, want newest %d", summaries[0].OrderID, newID)
	}
}

func TestClampRecentLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-1, 1}, {0, 1}, {1, 1}, {5, 5}, {20, 20}, {21, 20},
	}
	for _, tt := range tests {
		if got := clampRecentLimit(tt.in); got != tt.want {
			t.Errorf("clampRecentLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
