package repository

import (
	"context"
	"time"

	"pos-service/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BillSummary is a count and money total over a set of bills.
type BillSummary struct {
	Count int64
	Total decimal.Decimal
}

// BillRepository defines the interface for bill data access.
type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	FindByID(ctx context.Context, id uint) (*models.Bill, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Bill, error)
	FindByStatus(ctx context.Context, status models.BillStatus) ([]models.Bill, error)
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Bill, error)
	MarkPaid(ctx context.Context, id uint, paidAt time.Time) error
	SummarizePaidSince(ctx context.Context, since time.Time) (*BillSummary, error)
	SummarizePending(ctx context.Context) (*BillSummary, error)
}

// GormBillRepository implements BillRepository using GORM.
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository.
func NewGormBillRepository(db *gorm.DB) BillRepository {
	return &GormBillRepository{db: db}
}

// Create inserts the bill row only; orders are attached with
// OrderRepository.MarkBilled.
func (r *GormBillRepository) Create(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(bill).Error
}

// FindByID retrieves a bill with its table and the orders it covers.
func (r *GormBillRepository) FindByID(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := r.db.WithContext(ctx).
		Preload("Table").
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Orders.Items").
		First(&bill, id).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *GormBillRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&bill, id).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

// FindByStatus lists bills in the given state, newest first.
func (r *GormBillRepository) FindByStatus(ctx context.Context, status models.BillStatus) ([]models.Bill, error) {
	var bills []models.Bill
	if err := r.db.WithContext(ctx).
		Preload("Table").
		Where("status = ?", status).
		Order("generated_at DESC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindPendingOlderThan lists unpaid bills generated before cutoff, oldest first.
func (r *GormBillRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]models.Bill, error) {
	var bills []models.Bill
	if err := r.db.WithContext(ctx).
		Preload("Table").
		Where("status = ? AND generated_at < ?", models.BillStatusPendingPayment, cutoff).
		Order("generated_at ASC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// MarkPaid flips a pending bill to Paid. A bill that is already paid is
// left untouched and reported as not found.
func (r *GormBillRepository) MarkPaid(ctx context.Context, id uint, paidAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Bill{}).
		Where("id = ? AND status <> ?", id, models.BillStatusPaid).
		Updates(map[string]interface{}{
			"status":  models.BillStatusPaid,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormBillRepository) SummarizePaidSince(ctx context.Context, since time.Time) (*BillSummary, error) {
	return r.summarize(r.db.WithContext(ctx).
		Where("status = ? AND paid_at >= ?", models.BillStatusPaid, since))
}

func (r *GormBillRepository) SummarizePending(ctx context.Context) (*BillSummary, error) {
	return r.summarize(r.db.WithContext(ctx).
		Where("status = ?", models.BillStatusPendingPayment))
}

func (r *GormBillRepository) summarize(query *gorm.DB) (*BillSummary, error) {
	var summary BillSummary
	err := query.
		Model(&models.Bill{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
