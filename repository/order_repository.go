package repository

import (
	"context"

	"pos-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Order, error)
	FindByTableID(ctx context.Context, tableID uint) ([]models.Order, error)
	FindUnbilledServedForUpdate(ctx context.Context, tableID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
	MarkBilled(ctx context.Context, orderIDs []uint, billID uint) (int64, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order together with its items.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Table").Create(order).Error
}

// FindByID retrieves an order with its items and table.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Table").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row for the rest of the transaction.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByTableID returns every order of a table, newest first.
func (r *GormOrderRepository) FindByTableID(ctx context.Context, tableID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("table_id = ?", tableID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindUnbilledServedForUpdate selects and locks the served orders of a
// table that no bill covers yet.
func (r *GormOrderRepository) FindUnbilledServedForUpdate(ctx context.Context, tableID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Where("table_id = ? AND status = ? AND is_billed = ?", tableID, models.OrderStatusServed, false).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkBilled attaches the orders to billID. Only rows still unbilled are
// touched; the returned count lets the caller detect a concurrent biller.
func (r *GormOrderRepository) MarkBilled(ctx context.Context, orderIDs []uint, billID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id IN ? AND is_billed = ?", orderIDs, false).
		Updates(map[string]interface{}{
			"is_billed": true,
			"bill_id":   billID,
		})
	return result.RowsAffected, result.Error
}
