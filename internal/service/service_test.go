package service

import (
	"context"
	"testing"

	"perfume-shop-api/internal/dto"
	"perfume-shop-api/internal/model"
	"perfume-shop-api/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database. The pool is capped at one
// connection so every query sees the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Perfume{},
		&model.Order{},
		&model.OrderItem{},
		&model.PaymentDetail{},
		&model.CartItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newTestCheckoutService(db *gorm.DB) CheckoutService {
	return NewCheckoutService(
		db,
		repository.NewOrderRepository(db),
		repository.NewPerfumeRepository(db),
		repository.NewPaymentDetailRepository(db),
		repository.NewCartRepository(db),
		nil,
	)
}

func seedPerfume(t *testing.T, db *gorm.DB, id uint, name string, price float64, quantity int, available bool) {
	t.Helper()

	p := model.Perfume{ID: id, Name: name, Price: price, Quantity: quantity, Available: available}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed perfume %d: %v", id, err)
	}
}

func perfumeStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()

	var p model.Perfume
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("load perfume %d: %v", id, err)
	}
	return p.Quantity
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()

	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

// validCardRequest builds a request that passes every validation rule, buying
// two units of perfume 1.
func validCardRequest() *dto.CheckoutRequest {
	return &dto.CheckoutRequest{
		Shipping: &dto.ShippingInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "Ada@Example.com",
			Phone:     "555-0100",
			Address:   "12 Analytical Way",
			City:      "London",
			State:     "LDN",
			Zip:       "EC1A",
		},
		PaymentMethod: str("card"),
		Items: []dto.CheckoutItem{
			{PerfumeID: float64(1), Quantity: float64(2), SelectedSize: "50ml", Price: float64(89.99)},
		},
		TotalPrice:   f64(179.98),
		Tax:          f64(14.40),
		ShippingCost: f64(5.00),
		CardDetails: &dto.CardDetails{
			CardName:   "Ada Lovelace",
			CardNumber: "4111 1111 1111 111",
			Expiry:     "12/27",
			CVV:        "123",
		},
	}
}

func checkServiceError(t *testing.T, err error, wantStatus int, wantMessage string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error %q, got nil", wantMessage)
	}
	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *service.Error, got %T: %v", err, err)
	}
	if svcErr.Status != wantStatus {
		t.Errorf("status = %d, want %d", svcErr.Status, wantStatus)
	}
	if svcErr.Message != wantMessage {
		t.Errorf("message = %q, want %q", svcErr.Message, wantMessage)
	}
}

var testCtx = context.Background()
