package services

import (
	"context"
	"time"

	"pos-service/models"
	aws_pkg "pos-service/pkg/aws"
	"pos-service/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingConfig holds the billing knobs read from configuration.
type BillingConfig struct {
	TaxPercentage decimal.Decimal
	OverdueAfter  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// BillingService turns served orders into bills and settles them.
type BillingService interface {
	GenerateBill(ctx context.Context, actor models.Actor, tableID uint) (*models.Bill, *ServiceError)
	MarkBillPaid(ctx context.Context, actor models.Actor, billID uint) (*models.Bill, *ServiceError)
	ListPendingBills(ctx context.Context, actor models.Actor) ([]models.Bill, *ServiceError)
	ListOverdueBills(ctx context.Context, actor models.Actor) ([]models.Bill, *ServiceError)
	GetBill(ctx context.Context, actor models.Actor, billID uint) (*models.Bill, *ServiceError)
	CashierStats(ctx context.Context, actor models.Actor) (*models.CashierStats, *ServiceError)
}

type billingServiceImpl struct {
	store   repository.Store
	cfg     BillingConfig
	events  *eventPublisher
	metrics Metrics
	logger  *zap.Logger
}

// NewBillingService creates a new BillingService.
func NewBillingService(
	store repository.Store,
	cfg BillingConfig,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	metrics Metrics,
	logger *zap.Logger,
) BillingService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.OverdueAfter <= 0 {
		cfg.OverdueAfter = 30 * time.Minute
	}
	return &billingServiceImpl{
		store:   store,
		cfg:     cfg,
		events:  newEventPublisher(snsClient, snsTopicArn, logger),
		metrics: metrics,
		logger:  logger,
	}
}

// GenerateBill bills every served order of the table that no earlier bill
// covers. The table row and the candidate orders are locked for the length
// of the transaction, and orders are claimed with a compare-and-swap on
// is_billed so the same order can never land on two bills.
func (s *billingServiceImpl) GenerateBill(ctx context.Context, actor models.Actor, tableID uint) (*models.Bill, *ServiceError) {
	if svcErr := Authorize(actor, OpGenerateBill); svcErr != nil {
		return nil, svcErr
	}
	if tableID == 0 {
		return nil, invalidInput("Table ID required")
	}

	var bill *models.Bill
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		table, err := tx.Tables().FindByIDForUpdate(ctx, tableID)
		if err != nil {
			if isNotFound(err) {
				return notFound("Table not found")
			}
			return err
		}

		orders, err := tx.Orders().FindUnbilledServedForUpdate(ctx, table.ID)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return invalidState("No served orders found for this table")
		}

		bill = &models.Bill{
			TableID:       table.ID,
			TaxPercentage: s.cfg.TaxPercentage,
			Status:        models.BillStatusPendingPayment,
			GeneratedAt:   s.cfg.Now(),
		}
		if actor.UserID != 0 {
			generatedBy := actor.UserID
			bill.GeneratedByID = &generatedBy
		}
		bill.Calculate(orders)

		if err := tx.Bills().Create(ctx, bill); err != nil {
			return err
		}

		orderIDs := make([]uint, len(orders))
		for i := range orders {
			orderIDs[i] = orders[i].ID
		}
		n, err := tx.Orders().MarkBilled(ctx, orderIDs, bill.ID)
		if err != nil {
			return err
		}
		if n != int64(len(orderIDs)) {
			return invalidState("Orders were billed concurrently, please retry")
		}

		billID := bill.ID
		for i := range orders {
			orders[i].IsBilled = true
			orders[i].BillID = &billID
		}
		bill.Table = table
		bill.Orders = orders
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindUnexpected {
			s.logger.Error("Failed to generate bill", zap.Uint("table_id", tableID), zap.Error(err))
		}
		return nil, svcErr
	}

	s.logger.Info("Bill generated",
		zap.Uint("bill_id", bill.ID),
		zap.Uint("table_id", bill.TableID),
		zap.Int("orders", len(bill.Orders)),
		zap.String("subtotal", bill.Subtotal.StringFixed(2)),
		zap.String("tax_amount", bill.TaxAmount.StringFixed(2)),
		zap.String("total_amount", bill.TotalAmount.StringFixed(2)))
	recordCount(ctx, s.metrics, s.logger, aws_pkg.MetricBillsGenerated, nil)
	s.publishBillEvent(ctx, models.EventBillGenerated, bill, actor)
	return bill, nil
}

// MarkBillPaid settles a pending bill and releases its table back to
// Available in the same transaction, whatever the table's prior status.
func (s *billingServiceImpl) MarkBillPaid(ctx context.Context, actor models.Actor, billID uint) (*models.Bill, *ServiceError) {
	if svcErr := Authorize(actor, OpMarkBillPaid); svcErr != nil {
		return nil, svcErr
	}

	var bill *models.Bill
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		bill, err = tx.Bills().FindByIDForUpdate(ctx, billID)
		if err != nil {
			if isNotFound(err) {
				return notFound("Bill not found")
			}
			return err
		}
		if bill.Status == models.BillStatusPaid {
			return invalidState("Bill is already paid")
		}

		table, err := tx.Tables().FindByIDForUpdate(ctx, bill.TableID)
		if err != nil {
			return err
		}

		paidAt := s.cfg.Now()
		if err := tx.Bills().MarkPaid(ctx, bill.ID, paidAt); err != nil {
			if isNotFound(err) {
				return invalidState("Bill is already paid")
			}
			return err
		}
		bill.Status = models.BillStatusPaid
		bill.PaidAt = &paidAt

		if err := setTableStatus(ctx, tx, s.logger, table, models.TableStatusAvailable); err != nil {
			return err
		}
		bill.Table = table
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindUnexpected {
			s.logger.Error("Failed to mark bill paid", zap.Uint("bill_id", billID), zap.Error(err))
		}
		return nil, svcErr
	}

	s.logger.Info("Bill paid",
		zap.Uint("bill_id", bill.ID),
		zap.Uint("table_id", bill.TableID),
		zap.String("total_amount", bill.TotalAmount.StringFixed(2)))
	recordCount(ctx, s.metrics, s.logger, aws_pkg.MetricBillsPaid, nil)
	s.publishBillEvent(ctx, models.EventBillPaid, bill, actor)
	return bill, nil
}

func (s *billingServiceImpl) ListPendingBills(ctx context.Context, actor models.Actor) ([]models.Bill, *ServiceError) {
	if svcErr := Authorize(actor, OpListPendingBills); svcErr != nil {
		return nil, svcErr
	}
	bills, err := s.store.Bills().FindByStatus(ctx, models.BillStatusPendingPayment)
	if err != nil {
		s.logger.Error("Failed to list pending bills", zap.Error(err))
		return nil, unexpected(err)
	}
	return bills, nil
}

// ListOverdueBills returns pending bills generated more than
// BillingConfig.OverdueAfter ago.
func (s *billingServiceImpl) ListOverdueBills(ctx context.Context, actor models.Actor) ([]models.Bill, *ServiceError) {
	if svcErr := Authorize(actor, OpListOverdueBills); svcErr != nil {
		return nil, svcErr
	}
	bills, err := s.store.Bills().FindPendingOlderThan(ctx, s.cfg.Now().Add(-s.cfg.OverdueAfter))
	if err != nil {
		s.logger.Error("Failed to list overdue bills", zap.Error(err))
		return nil, unexpected(err)
	}
	return bills, nil
}

func (s *billingServiceImpl) GetBill(ctx context.Context, actor models.Actor, billID uint) (*models.Bill, *ServiceError) {
	if svcErr := Authorize(actor, OpGetBill); svcErr != nil {
		return nil, svcErr
	}
	bill, err := s.store.Bills().FindByID(ctx, billID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Bill not found")
		}
		return nil, unexpected(err)
	}
	return bill, nil
}

// CashierStats summarises today's takings and the open billing work.
func (s *billingServiceImpl) CashierStats(ctx context.Context, actor models.Actor) (*models.CashierStats, *ServiceError) {
	if svcErr := Authorize(actor, OpCashierStats); svcErr != nil {
		return nil, svcErr
	}

	now := s.cfg.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	paid, err := s.store.Bills().SummarizePaidSince(ctx, startOfDay)
	if err != nil {
		return nil, unexpected(err)
	}
	pending, err := s.store.Bills().SummarizePending(ctx)
	if err != nil {
		return nil, unexpected(err)
	}
	overdue, err := s.store.Bills().FindPendingOlderThan(ctx, now.Add(-s.cfg.OverdueAfter))
	if err != nil {
		return nil, unexpected(err)
	}
	ready, err := s.store.Tables().FindReadyForBill(ctx)
	if err != nil {
		return nil, unexpected(err)
	}

	return &models.CashierStats{
		PaidToday:          paid.Count,
		RevenueToday:       paid.Total,
		PendingBills:       pending.Count,
		PendingAmount:      pending.Total,
		OverdueBills:       int64(len(overdue)),
		TablesReadyForBill: len(ready),
	}, nil
}

func (s *billingServiceImpl) publishBillEvent(ctx context.Context, eventType string, bill *models.Bill, actor models.Actor) {
	event := models.BillEvent{
		EventType:   eventType,
		BillID:      bill.ID,
		TableID:     bill.TableID,
		Status:      string(bill.Status),
		Subtotal:    bill.Subtotal.StringFixed(2),
		TaxAmount:   bill.TaxAmount.StringFixed(2),
		TotalAmount: bill.TotalAmount.StringFixed(2),
		ActorID:     actor.UserID,
		Timestamp:   time.Now().UTC(),
	}
	if bill.Table != nil {
		event.TableNumber = bill.Table.TableNumber
	}
	for _, o := range bill.Orders {
		event.OrderIDs = append(event.OrderIDs, o.ID)
	}
	s.events.publish(ctx, eventType, event)
}
