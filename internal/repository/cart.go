package repository

import (
	"context"

	"perfume-shop-api/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	// ClearForUser deletes every cart row for the user. Clearing an already
	// empty cart is not an error.
	ClearForUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) ClearForUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	return tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
