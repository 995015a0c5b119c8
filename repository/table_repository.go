package repository

import (
	"context"

	"pos-service/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableRepository defines the interface for dining table data access.
type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	FindByID(ctx context.Context, id uint) (*models.Table, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Table, error)
	FindAll(ctx context.Context) ([]models.Table, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdateStatus(ctx context.Context, id uint, status models.TableStatus) error
	Delete(ctx context.Context, id uint) error
	FindReadyForBill(ctx context.Context) ([]models.ReadyForBillTable, error)
}

// GormTableRepository implements TableRepository using GORM.
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository.
func NewGormTableRepository(db *gorm.DB) TableRepository {
	return &GormTableRepository{db: db}
}

func (r *GormTableRepository) Create(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *GormTableRepository) FindByID(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// FindByIDForUpdate reads the table row with SELECT ... FOR UPDATE. Only
// meaningful inside a transaction.
func (r *GormTableRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// FindAll returns every table ordered by table number.
func (r *GormTableRepository) FindAll(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.WithContext(ctx).Order("table_number ASC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// UpdateFields writes only the given columns of one table.
func (r *GormTableRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Table{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus overwrites the status column of a single table.
func (r *GormTableRepository) UpdateStatus(ctx context.Context, id uint, status models.TableStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Table{}).
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

// Delete removes a table. Orders, order items and bills go with it through
// the ON DELETE CASCADE foreign keys.
func (r *GormTableRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Table{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindReadyForBill lists tables holding at least one served order that has
// not been billed yet, with the count and sum of those orders.
func (r *GormTableRepository) FindReadyForBill(ctx context.Context) ([]models.ReadyForBillTable, error) {
	var rows []models.ReadyForBillTable
	err := r.db.WithContext(ctx).
		Table("tables").
		Select("tables.id AS table_id, tables.table_number, tables.status, COUNT(orders.id) AS order_count, COALESCE(SUM(orders.total_amount), 0) AS unbilled_total").
		Joins("JOIN orders ON orders.table_id = tables.id AND orders.status = ? AND orders.is_billed = ?", models.OrderStatusServed, false).
		Group("tables.id, tables.table_number, tables.status").
		Order("tables.table_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
