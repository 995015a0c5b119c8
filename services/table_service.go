package services

import (
	"context"
	"strings"

	"pos-service/models"
	"pos-service/repository"

	"go.uber.org/zap"
)

// TableService manages dining tables.
type TableService interface {
	CreateTable(ctx context.Context, actor models.Actor, req *models.CreateTableRequest) (*models.Table, *ServiceError)
	UpdateTable(ctx context.Context, actor models.Actor, id uint, req *models.UpdateTableRequest) (*models.Table, *ServiceError)
	DeleteTable(ctx context.Context, actor models.Actor, id uint) *ServiceError
	ListTables(ctx context.Context, actor models.Actor) ([]models.Table, *ServiceError)
	ListTablesReadyForBill(ctx context.Context, actor models.Actor) ([]models.ReadyForBillTable, *ServiceError)
}

type tableServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
}

// NewTableService creates a new TableService.
func NewTableService(store repository.Store, logger *zap.Logger) TableService {
	return &tableServiceImpl{store: store, logger: logger}
}

func (s *tableServiceImpl) CreateTable(ctx context.Context, actor models.Actor, req *models.CreateTableRequest) (*models.Table, *ServiceError) {
	if svcErr := Authorize(actor, OpCreateTable); svcErr != nil {
		return nil, svcErr
	}

	number := strings.TrimSpace(req.TableNumber)
	if number == "" || req.SeatingCapacity == 0 {
		return nil, invalidInput("Table number and seating capacity required")
	}
	if len(number) > 10 {
		return nil, invalidInput("Table number must be at most 10 characters")
	}
	if req.SeatingCapacity < 1 {
		return nil, invalidInput("Seating capacity must be at least 1")
	}

	table := &models.Table{
		TableNumber:     number,
		SeatingCapacity: req.SeatingCapacity,
		Status:          models.TableStatusAvailable,
	}
	if err := s.store.Tables().Create(ctx, table); err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateKey("Table number already exists")
		}
		s.logger.Error("Failed to create table", zap.String("table_number", number), zap.Error(err))
		return nil, unexpected(err)
	}

	s.logger.Info("Table created", zap.Uint("table_id", table.ID), zap.String("table_number", table.TableNumber))
	return table, nil
}

// UpdateTable applies a partial override. A status given here is written as
// is; it is the only path through which a client sets table status. The row
// is locked and only the supplied columns are written, so a concurrent
// order or payment status change is never overwritten by a rename.
func (s *tableServiceImpl) UpdateTable(ctx context.Context, actor models.Actor, id uint, req *models.UpdateTableRequest) (*models.Table, *ServiceError) {
	if svcErr := Authorize(actor, OpUpdateTable); svcErr != nil {
		return nil, svcErr
	}

	fields := map[string]interface{}{}
	if req.TableNumber != nil {
		number := strings.TrimSpace(*req.TableNumber)
		if number == "" || len(number) > 10 {
			return nil, invalidInput("Table number must be 1 to 10 characters")
		}
		fields["table_number"] = number
	}
	if req.SeatingCapacity != nil {
		if *req.SeatingCapacity < 1 {
			return nil, invalidInput("Seating capacity must be at least 1")
		}
		fields["seating_capacity"] = *req.SeatingCapacity
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, invalidInput("Invalid status")
		}
		fields["status"] = *req.Status
	}

	var table *models.Table
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		current, err := tx.Tables().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Status != nil && *req.Status != current.Status {
			s.logger.Info("Table status overridden",
				zap.Uint("table_id", current.ID),
				zap.String("from", string(current.Status)),
				zap.String("to", string(*req.Status)),
				zap.Uint("actor_id", actor.UserID))
		}
		if len(fields) > 0 {
			if err := tx.Tables().UpdateFields(ctx, id, fields); err != nil {
				return err
			}
			if current, err = tx.Tables().FindByID(ctx, id); err != nil {
				return err
			}
		}
		table = current
		return nil
	})
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, notFound("Table not found")
		case isUniqueViolation(err):
			return nil, duplicateKey("Table number already exists")
		}
		s.logger.Error("Failed to update table", zap.Uint("table_id", id), zap.Error(err))
		return nil, unexpected(err)
	}
	return table, nil
}

func (s *tableServiceImpl) DeleteTable(ctx context.Context, actor models.Actor, id uint) *ServiceError {
	if svcErr := Authorize(actor, OpDeleteTable); svcErr != nil {
		return svcErr
	}
	if err := s.store.Tables().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return notFound("Table not found")
		}
		s.logger.Error("Failed to delete table", zap.Uint("table_id", id), zap.Error(err))
		return unexpected(err)
	}
	s.logger.Info("Table deleted", zap.Uint("table_id", id), zap.Uint("actor_id", actor.UserID))
	return nil
}

func (s *tableServiceImpl) ListTables(ctx context.Context, actor models.Actor) ([]models.Table, *ServiceError) {
	if svcErr := Authorize(actor, OpListTables); svcErr != nil {
		return nil, svcErr
	}
	tables, err := s.store.Tables().FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list tables", zap.Error(err))
		return nil, unexpected(err)
	}
	return tables, nil
}

func (s *tableServiceImpl) ListTablesReadyForBill(ctx context.Context, actor models.Actor) ([]models.ReadyForBillTable, *ServiceError) {
	if svcErr := Authorize(actor, OpListTablesReadyToBill); svcErr != nil {
		return nil, svcErr
	}
	ready, err := s.store.Tables().FindReadyForBill(ctx)
	if err != nil {
		s.logger.Error("Failed to list tables ready for bill", zap.Error(err))
		return nil, unexpected(err)
	}
	return ready, nil
}

// setTableStatus is the single transition function for POS-driven table
// status changes. It must be called with a Store bound to the caller's
// transaction, after the table row has been locked.
func setTableStatus(ctx context.Context, tx repository.Store, logger *zap.Logger, table *models.Table, to models.TableStatus) error {
	if table.Status == to {
		return nil
	}
	if err := tx.Tables().UpdateStatus(ctx, table.ID, to); err != nil {
		return err
	}
	logger.Info("Table status changed",
		zap.Uint("table_id", table.ID),
		zap.String("table_number", table.TableNumber),
		zap.String("from", string(table.Status)),
		zap.String("to", string(to)))
	table.Status = to
	return nil
}
