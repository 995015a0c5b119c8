package services_test

import (
	"context"
	"testing"
	"time"

	"pos-service/models"
	"pos-service/repository"
	"pos-service/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTableService(store *mockStore) services.TableService {
	logger, _ := zap.NewDevelopment()
	return services.NewTableService(store, logger)
}

func TestCreateTable_Success(t *testing.T) {
	store := newMockStore()
	svc := newTableService(store)

	table, svcErr := svc.CreateTable(context.Background(), manager, &models.CreateTableRequest{TableNumber: " T-05 ", SeatingCapacity: 6})
	require.Nil(t, svcErr)
	assert.Equal(t, "T-05", table.TableNumber)
	assert.Equal(t, models.TableStatusAvailable, table.Status)
	assert.NotZero(t, table.ID)
}

func TestCreateTable_Errors(t *testing.T) {
	store := newMockStore()
	store.addTable("T-01", models.TableStatusAvailable)
	svc := newTableService(store)

	tests := []struct {
		name   string
		actor  models.Actor
		req    models.CreateTableRequest
		kind   services.ErrorKind
		status int
		msg    string
	}{
		{"waiter denied", waiter, models.CreateTableRequest{TableNumber: "T-09", SeatingCapacity: 2}, services.KindPermissionDenied, 403, "Only Manager can create tables"},
		{"admin denied", admin, models.CreateTableRequest{TableNumber: "T-09", SeatingCapacity: 2}, services.KindPermissionDenied, 403, "Only Manager can create tables"},
		{"missing number", manager, models.CreateTableRequest{SeatingCapacity: 2}, services.KindInvalidInput, 400, "Table number and seating capacity required"},
		{"negative capacity", manager, models.CreateTableRequest{TableNumber: "T-09", SeatingCapacity: -1}, services.KindInvalidInput, 400, "Seating capacity must be at least 1"},
		{"duplicate", manager, models.CreateTableRequest{TableNumber: "T-01", SeatingCapacity: 2}, services.KindDuplicateKey, 400, "Table number already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, svcErr := svc.CreateTable(context.Background(), tt.actor, &req)
			require.NotNil(t, svcErr)
			assert.Equal(t, tt.kind, svcErr.Kind)
			assert.Equal(t, tt.status, svcErr.StatusCode)
			assert.Equal(t, tt.msg, svcErr.Message)
		})
	}
}

func TestUpdateTable_PartialOverride(t *testing.T) {
	store := newMockStore()
	table := store.addTable("T-01", models.TableStatusOccupied)
	store.addTable("T-02", models.TableStatusAvailable)
	svc := newTableService(store)
	ctx := context.Background()

	status := models.TableStatusClosed
	updated, svcErr := svc.UpdateTable(ctx, manager, table.ID, &models.UpdateTableRequest{Status: &status})
	require.Nil(t, svcErr)
	assert.Equal(t, models.TableStatusClosed, updated.Status)
	assert.Equal(t, "T-01", updated.TableNumber)
	assert.Equal(t, 4, updated.SeatingCapacity)

	bogus := models.TableStatus("Reserved")
	_, svcErr = svc.UpdateTable(ctx, manager, table.ID, &models.UpdateTableRequest{Status: &bogus})
	require.NotNil(t, svcErr)
	assert.Equal(t, "Invalid status", svcErr.Message)

	taken := "T-02"
	_, svcErr = svc.UpdateTable(ctx, manager, table.ID, &models.UpdateTableRequest{TableNumber: &taken})
	require.NotNil(t, svcErr)
	assert.Equal(t, services.KindDuplicateKey, svcErr.Kind)

	_, svcErr = svc.UpdateTable(ctx, manager, 999, &models.UpdateTableRequest{Status: &status})
	require.NotNil(t, svcErr)
	assert.Equal(t, services.KindNotFound, svcErr.Kind)
}

func TestUpdateTable_CapacityOnlyLocksRowAndLeavesStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	logger, _ := zap.NewDevelopment()
	svc := services.NewTableService(repository.NewGormStore(gormDB), logger)

	now := time.Now()
	columns := []string{"id", "table_number", "seating_capacity", "status", "created_at", "updated_at"}
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tables" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "T-01", 4, models.TableStatusAvailable, now, now))
	mock.ExpectExec(`UPDATE "tables" SET "seating_capacity"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(6, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "tables"`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "T-01", 6, models.TableStatusOccupied, now, now))
	mock.ExpectCommit()

	capacity := 6
	table, svcErr := svc.UpdateTable(context.Background(), manager, 1, &models.UpdateTableRequest{SeatingCapacity: &capacity})
	require.Nil(t, svcErr)
	assert.Equal(t, 6, table.SeatingCapacity)
	// The status committed by another transaction survives the edit.
	assert.Equal(t, models.TableStatusOccupied, table.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTable_CascadesToOrdersAndBills(t *testing.T) {
	store := newMockStore()
	table := store.addTable("T-01", models.TableStatusAvailable)
	item := store.addMenuItem("Spring Rolls", models.CategoryStarter, "120.00", true)
	logger, _ := zap.NewDevelopment()
	orders := services.NewOrderService(store, services.OrderConfig{StrictStatus: true}, nil, "", nil, logger)
	billing := services.NewBillingService(store, services.BillingConfig{TaxPercentage: models.DefaultTaxPercentage}, nil, "", nil, logger)
	ctx := context.Background()

	order, _ := orders.CreateOrder(ctx, waiter, orderRequest(table.ID, line(item.ID, 1)))
	_, _ = orders.UpdateOrderStatus(ctx, waiter, order.ID, models.OrderStatusServed)
	_, svcErr := billing.GenerateBill(ctx, cashier, table.ID)
	require.Nil(t, svcErr)

	svc := newTableService(store)
	require.Nil(t, svc.DeleteTable(ctx, manager, table.ID))
	assert.Equal(t, 0, store.orderCount())
	assert.Equal(t, 0, store.billCount())

	svcErr = svc.DeleteTable(ctx, manager, table.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, services.KindNotFound, svcErr.Kind)
}

func TestListTables_AnyRoleOrderedByNumber(t *testing.T) {
	store := newMockStore()
	store.addTable("T-02", models.TableStatusAvailable)
	store.addTable("T-01", models.TableStatusOccupied)
	svc := newTableService(store)

	for _, actor := range []models.Actor{admin, manager, waiter, cashier} {
		tables, svcErr := svc.ListTables(context.Background(), actor)
		require.Nil(t, svcErr)
		require.Len(t, tables, 2)
		assert.Equal(t, "T-01", tables[0].TableNumber)
	}
}

func TestListTablesReadyForBill(t *testing.T) {
	store := newMockStore()
	ready := store.addTable("T-01", models.TableStatusAvailable)
	store.addTable("T-02", models.TableStatusAvailable)
	item := store.addMenuItem("Spring Rolls", models.CategoryStarter, "120.00", true)
	logger, _ := zap.NewDevelopment()
	orders := services.NewOrderService(store, services.OrderConfig{StrictStatus: true}, nil, "", nil, logger)
	ctx := context.Background()

	order, _ := orders.CreateOrder(ctx, waiter, orderRequest(ready.ID, line(item.ID, 3)))
	_, _ = orders.UpdateOrderStatus(ctx, waiter, order.ID, models.OrderStatusServed)

	svc := newTableService(store)
	rows, svcErr := svc.ListTablesReadyForBill(ctx, cashier)
	require.Nil(t, svcErr)
	require.Len(t, rows, 1)
	assert.Equal(t, ready.ID, rows[0].TableID)
	assert.Equal(t, int64(1), rows[0].OrderCount)
	assert.Equal(t, "360.00", rows[0].UnbilledTotal.StringFixed(2))

	_, svcErr = svc.ListTablesReadyForBill(ctx, waiter)
	require.NotNil(t, svcErr)
	assert.Equal(t, services.KindPermissionDenied, svcErr.Kind)
}
