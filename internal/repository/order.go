package repository

import (
	"context"
	"time"

	"perfume-shop-api/internal/model"

	"gorm.io/gorm"
)

// OrderItemRow is an order item joined with its perfume name, used by the
// read endpoints.
type OrderItemRow struct {
	PerfumeID uint
	Name      string
	Quantity  int
	Size      *string
	UnitPrice float64
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateItem(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, status string) error

	FindByUser(ctx context.Context, userID uint) ([]model.Order, error)
	FindForUser(ctx context.Context, orderID, userID uint) (*model.Order, error)
	FindRecentByUser(ctx context.Context, userID uint, limit int) ([]model.Order, error)
	ItemsForOrder(ctx context.Context, orderID uint) ([]OrderItemRow, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateItem(ctx context.Context, tx *gorm.DB, item *model.OrderItem) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint, status string) error {
	result := tx.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepoImpl) FindByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindForUser(ctx context.Context, orderID, userID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindRecentByUser(ctx context.Context, userID uint, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ItemsForOrder(ctx context.Context, orderID uint) ([]OrderItemRow, error) {
	var rows []OrderItemRow
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.perfume_id, perfumes.name, order_items.quantity, order_items.size, order_items.unit_price").
		Joins("JOIN perfumes ON perfumes.id = order_items.perfume_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}
