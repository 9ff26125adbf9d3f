package repository

import (
	"context"

	"perfume-shop-api/internal/model"

	"gorm.io/gorm"
)

type PaymentDetailRepository interface {
	// Create stores the masked payment record for a card order. Only the last
	// four digits of the card number ever reach this layer.
	Create(ctx context.Context, tx *gorm.DB, detail *model.PaymentDetail) error
}

type paymentDetailRepoImpl struct {
	db *gorm.DB
}

func NewPaymentDetailRepository(db *gorm.DB) PaymentDetailRepository {
	return &paymentDetailRepoImpl{
		db: db,
	}
}

func (r *paymentDetailRepoImpl) Create(ctx context.Context, tx *gorm.DB, detail *model.PaymentDetail) error {
	return tx.WithContext(ctx).Create(detail).Error
}
