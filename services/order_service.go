package services

import (
	"context"
	"fmt"
	"time"

	"pos-service/models"
	aws_pkg "pos-service/pkg/aws"
	"pos-service/repository"

	"go.uber.org/zap"
)

// OrderConfig tunes order status handling.
type OrderConfig struct {
	// StrictStatus only allows forward moves (Placed -> In Kitchen -> Served)
	// and rejects status changes on billed orders. When false any of the
	// three statuses overwrites the current one.
	StrictStatus bool
}

// OrderService places orders and moves them through the kitchen.
type OrderService interface {
	CreateOrder(ctx context.Context, actor models.Actor, req *models.CreateOrderRequest) (*models.Order, *ServiceError)
	UpdateOrderStatus(ctx context.Context, actor models.Actor, orderID uint, status models.OrderStatus) (*models.Order, *ServiceError)
	ListTableOrders(ctx context.Context, actor models.Actor, tableID uint) ([]models.Order, *ServiceError)
	GetOrder(ctx context.Context, actor models.Actor, orderID uint) (*models.Order, *ServiceError)
}

type orderServiceImpl struct {
	store   repository.Store
	cfg     OrderConfig
	events  *eventPublisher
	metrics Metrics
	logger  *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	store repository.Store,
	cfg OrderConfig,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	metrics Metrics,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		store:   store,
		cfg:     cfg,
		events:  newEventPublisher(snsClient, snsTopicArn, logger),
		metrics: metrics,
		logger:  logger,
	}
}

// CreateOrder creates the order, all its lines and the Available -> Occupied
// table transition in one transaction.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, actor models.Actor, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	if svcErr := Authorize(actor, OpCreateOrder); svcErr != nil {
		return nil, svcErr
	}
	if req.TableID == 0 || len(req.Items) == 0 {
		return nil, invalidInput("Table and items required")
	}
	menuIDs := make([]uint, 0, len(req.Items))
	for _, line := range req.Items {
		if line.MenuItemID == 0 {
			return nil, invalidInput("Menu item ID required")
		}
		if line.Quantity < 1 {
			return nil, invalidInput("Quantity must be at least 1")
		}
		menuIDs = append(menuIDs, line.MenuItemID)
	}

	var order *models.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		table, err := tx.Tables().FindByIDForUpdate(ctx, req.TableID)
		if err != nil {
			if isNotFound(err) {
				return notFound("Table not found")
			}
			return err
		}

		menuItems, err := tx.MenuItems().FindByIDs(ctx, menuIDs)
		if err != nil {
			return err
		}
		byID := make(map[uint]models.MenuItem, len(menuItems))
		for _, m := range menuItems {
			byID[m.ID] = m
		}

		order = &models.Order{
			TableID: table.ID,
			Status:  models.OrderStatusPlaced,
			Items:   make([]models.OrderItem, 0, len(req.Items)),
		}
		if actor.UserID != 0 {
			createdBy := actor.UserID
			order.CreatedByID = &createdBy
		}
		for _, line := range req.Items {
			menuItem, ok := byID[line.MenuItemID]
			if !ok {
				return notFound("Menu item not found")
			}
			menuItemID := menuItem.ID
			item := models.OrderItem{
				MenuItemID:   &menuItemID,
				ItemName:     menuItem.Name,
				Quantity:     line.Quantity,
				PriceAtOrder: menuItem.Price,
			}
			item.ComputeSubtotal()
			order.Items = append(order.Items, item)
		}
		order.RecomputeTotal()

		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		if table.Status == models.TableStatusAvailable {
			if err := setTableStatus(ctx, tx, s.logger, table, models.TableStatusOccupied); err != nil {
				return err
			}
		}
		order.Table = table
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindUnexpected {
			s.logger.Error("Failed to create order", zap.Uint("table_id", req.TableID), zap.Error(err))
		}
		return nil, svcErr
	}

	s.logger.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("table_id", order.TableID),
		zap.Int("lines", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)))
	recordCount(ctx, s.metrics, s.logger, aws_pkg.MetricOrdersCreated, map[string]string{"Table": order.Table.TableNumber})
	s.publishOrderEvent(ctx, models.EventOrderCreated, order, actor)
	return order, nil
}

// UpdateOrderStatus moves an order to status. See OrderConfig.StrictStatus
// for the progression rules.
func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, actor models.Actor, orderID uint, status models.OrderStatus) (*models.Order, *ServiceError) {
	if svcErr := Authorize(actor, OpUpdateOrderStatus); svcErr != nil {
		return nil, svcErr
	}
	if !status.Valid() {
		return nil, invalidInput("Invalid status")
	}

	var changed bool
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if isNotFound(err) {
				return notFound("Order not found")
			}
			return err
		}
		if order.Status == status {
			return nil
		}
		if s.cfg.StrictStatus {
			if order.IsBilled {
				return invalidState("Order has already been billed")
			}
			if !order.Status.Precedes(status) {
				return invalidState(fmt.Sprintf("Cannot change order status from %s to %s", order.Status, status))
			}
		}
		if err := tx.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}
		s.logger.Info("Order status changed",
			zap.Uint("order_id", orderID),
			zap.String("from", string(order.Status)),
			zap.String("to", string(status)),
			zap.Uint("actor_id", actor.UserID))
		changed = true
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err)
		if svcErr.Kind == KindUnexpected {
			s.logger.Error("Failed to update order status", zap.Uint("order_id", orderID), zap.Error(err))
		}
		return nil, svcErr
	}

	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, unexpected(err)
	}
	if changed {
		if status == models.OrderStatusServed {
			recordCount(ctx, s.metrics, s.logger, aws_pkg.MetricOrdersServed, nil)
		}
		s.publishOrderEvent(ctx, models.EventOrderStatusUpdated, order, actor)
	}
	return order, nil
}

func (s *orderServiceImpl) ListTableOrders(ctx context.Context, actor models.Actor, tableID uint) ([]models.Order, *ServiceError) {
	if svcErr := Authorize(actor, OpListTableOrders); svcErr != nil {
		return nil, svcErr
	}
	if _, err := s.store.Tables().FindByID(ctx, tableID); err != nil {
		if isNotFound(err) {
			return nil, notFound("Table not found")
		}
		return nil, unexpected(err)
	}
	orders, err := s.store.Orders().FindByTableID(ctx, tableID)
	if err != nil {
		s.logger.Error("Failed to list table orders", zap.Uint("table_id", tableID), zap.Error(err))
		return nil, unexpected(err)
	}
	return orders, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, actor models.Actor, orderID uint) (*models.Order, *ServiceError) {
	if svcErr := Authorize(actor, OpGetOrder); svcErr != nil {
		return nil, svcErr
	}
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Order not found")
		}
		return nil, unexpected(err)
	}
	return order, nil
}

func (s *orderServiceImpl) publishOrderEvent(ctx context.Context, eventType string, order *models.Order, actor models.Actor) {
	event := models.OrderEvent{
		EventType:   eventType,
		OrderID:     order.ID,
		TableID:     order.TableID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount.StringFixed(2),
		ActorID:     actor.UserID,
		Timestamp:   time.Now().UTC(),
	}
	if order.Table != nil {
		event.TableNumber = order.Table.TableNumber
	}
	s.events.publish(ctx, eventType, event)
}
