package repository

import (
	"context"

	"perfume-shop-api/internal/model"

	"gorm.io/gorm"
)

type PerfumeRepository interface {
	// FindAvailable loads a perfume that is flagged available. Returns
	// gorm.ErrRecordNotFound for unknown or unavailable ids.
	FindAvailable(ctx context.Context, tx *gorm.DB, perfumeID uint) (*model.Perfume, error)

	// DeductStock decrements stock atomically. The quantity guard in the
	// WHERE clause makes the check-then-decrement race-free per row: of two
	// concurrent checkouts competing for the same stock, at most one can
	// match the predicate. Returns false when stock was insufficient.
	DeductStock(ctx context.Context, tx *gorm.DB, perfumeID uint, quantity int) (bool, error)
}

type perfumeRepoImpl struct {
	db *gorm.DB
}

func NewPerfumeRepository(db *gorm.DB) PerfumeRepository {
	return &perfumeRepoImpl{
		db: db,
	}
}

func (r *perfumeRepoImpl) FindAvailable(ctx context.Context, tx *gorm.DB, perfumeID uint) (*model.Perfume, error) {
	var perfume model.Perfume
	err := tx.WithContext(ctx).
		Where("id = ? AND available = ?", perfumeID, true).
		First(&perfume).Error

	if err != nil {
		return nil, err
	}

	return &perfume, nil
}

func (r *perfumeRepoImpl) DeductStock(ctx context.Context, tx *gorm.DB, perfumeID uint, quantity int) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&model.Perfume{}).
		Where("id = ? AND quantity >= ?", perfumeID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
