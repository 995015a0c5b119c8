package controllers_test

import (
	"context"
	"errors"

	"pos-service/models"
	"pos-service/services"

	"github.com/stretchr/testify/mock"
)

func svcErrOf(args mock.Arguments, i int) *services.ServiceError {
	svcErr, _ := args.Get(i).(*services.ServiceError)
	return svcErr
}

// --- TableService ---

type mockTableService struct{ mock.Mock }

func (m *mockTableService) CreateTable(_ context.Context, actor models.Actor, req *models.CreateTableRequest) (*models.Table, *services.ServiceError) {
	args := m.Called(actor, req)
	t, _ := args.Get(0).(*models.Table)
	return t, svcErrOf(args, 1)
}

func (m *mockTableService) UpdateTable(_ context.Context, actor models.Actor, id uint, req *models.UpdateTableRequest) (*models.Table, *services.ServiceError) {
	args := m.Called(actor, id, req)
	t, _ := args.Get(0).(*models.Table)
	return t, svcErrOf(args, 1)
}

func (m *mockTableService) DeleteTable(_ context.Context, actor models.Actor, id uint) *services.ServiceError {
	args := m.Called(actor, id)
	return svcErrOf(args, 0)
}

func (m *mockTableService) ListTables(_ context.Context, actor models.Actor) ([]models.Table, *services.ServiceError) {
	args := m.Called(actor)
	t, _ := args.Get(0).([]models.Table)
	return t, svcErrOf(args, 1)
}

func (m *mockTableService) ListTablesReadyForBill(_ context.Context, actor models.Actor) ([]models.ReadyForBillTable, *services.ServiceError) {
	args := m.Called(actor)
	t, _ := args.Get(0).([]models.ReadyForBillTable)
	return t, svcErrOf(args, 1)
}

// --- MenuService ---

type mockMenuService struct{ mock.Mock }

func (m *mockMenuService) CreateMenuItem(_ context.Context, actor models.Actor, req *models.CreateMenuItemRequest) (*models.MenuItem, *services.ServiceError) {
	args := m.Called(actor, req)
	item, _ := args.Get(0).(*models.MenuItem)
	return item, svcErrOf(args, 1)
}

func (m *mockMenuService) UpdateMenuItem(_ context.Context, actor models.Actor, id uint, req *models.UpdateMenuItemRequest) (*models.MenuItem, *services.ServiceError) {
	args := m.Called(actor, id, req)
	item, _ := args.Get(0).(*models.MenuItem)
	return item, svcErrOf(args, 1)
}

func (m *mockMenuService) DeleteMenuItem(_ context.Context, actor models.Actor, id uint) (*models.MenuItem, *services.ServiceError) {
	args := m.Called(actor, id)
	item, _ := args.Get(0).(*models.MenuItem)
	return item, svcErrOf(args, 1)
}

func (m *mockMenuService) ListMenuItems(_ context.Context, actor models.Actor) ([]models.MenuItem, *services.ServiceError) {
	args := m.Called(actor)
	items, _ := args.Get(0).([]models.MenuItem)
	return items, svcErrOf(args, 1)
}

// --- OrderService ---

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) CreateOrder(_ context.Context, actor models.Actor, req *models.CreateOrderRequest) (*models.Order, *services.ServiceError) {
	args := m.Called(actor, req)
	o, _ := args.Get(0).(*models.Order)
	return o, svcErrOf(args, 1)
}

func (m *mockOrderService) UpdateOrderStatus(_ context.Context, actor models.Actor, orderID uint, status models.OrderStatus) (*models.Order, *services.ServiceError) {
	args := m.Called(actor, orderID, status)
	o, _ := args.Get(0).(*models.Order)
	return o, svcErrOf(args, 1)
}

func (m *mockOrderService) ListTableOrders(_ context.Context, actor models.Actor, tableID uint) ([]models.Order, *services.ServiceError) {
	args := m.Called(actor, tableID)
	o, _ := args.Get(0).([]models.Order)
	return o, svcErrOf(args, 1)
}

func (m *mockOrderService) GetOrder(_ context.Context, actor models.Actor, orderID uint) (*models.Order, *services.ServiceError) {
	args := m.Called(actor, orderID)
	o, _ := args.Get(0).(*models.Order)
	return o, svcErrOf(args, 1)
}

// --- BillingService ---

type mockBillingService struct{ mock.Mock }

func (m *mockBillingService) GenerateBill(_ context.Context, actor models.Actor, tableID uint) (*models.Bill, *services.ServiceError) {
	args := m.Called(actor, tableID)
	b, _ := args.Get(0).(*models.Bill)
	return b, svcErrOf(args, 1)
}

func (m *mockBillingService) MarkBillPaid(_ context.Context, actor models.Actor, billID uint) (*models.Bill, *services.ServiceError) {
	args := m.Called(actor, billID)
	b, _ := args.Get(0).(*models.Bill)
	return b, svcErrOf(args, 1)
}

func (m *mockBillingService) ListPendingBills(_ context.Context, actor models.Actor) ([]models.Bill, *services.ServiceError) {
	args := m.Called(actor)
	b, _ := args.Get(0).([]models.Bill)
	return b, svcErrOf(args, 1)
}

func (m *mockBillingService) ListOverdueBills(_ context.Context, actor models.Actor) ([]models.Bill, *services.ServiceError) {
	args := m.Called(actor)
	b, _ := args.Get(0).([]models.Bill)
	return b, svcErrOf(args, 1)
}

func (m *mockBillingService) GetBill(_ context.Context, actor models.Actor, billID uint) (*models.Bill, *services.ServiceError) {
	args := m.Called(actor, billID)
	b, _ := args.Get(0).(*models.Bill)
	return b, svcErrOf(args, 1)
}

func (m *mockBillingService) CashierStats(_ context.Context, actor models.Actor) (*models.CashierStats, *services.ServiceError) {
	args := m.Called(actor)
	s, _ := args.Get(0).(*models.CashierStats)
	return s, svcErrOf(args, 1)
}

// --- UserService ---

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, *services.ServiceError) {
	args := m.Called(req)
	r, _ := args.Get(0).(*models.LoginResponse)
	return r, svcErrOf(args, 1)
}

func (m *mockUserService) CreateUser(_ context.Context, actor models.Actor, req *models.CreateUserRequest) (*models.User, *services.ServiceError) {
	args := m.Called(actor, req)
	u, _ := args.Get(0).(*models.User)
	return u, svcErrOf(args, 1)
}

func (m *mockUserService) ListUsers(_ context.Context, actor models.Actor) ([]models.User, *services.ServiceError) {
	args := m.Called(actor)
	u, _ := args.Get(0).([]models.User)
	return u, svcErrOf(args, 1)
}

func (m *mockUserService) DeleteUser(_ context.Context, actor models.Actor, id uint) *services.ServiceError {
	args := m.Called(actor, id)
	return svcErrOf(args, 0)
}

func (m *mockUserService) EnsureAdmin(_ context.Context, username, password string) error {
	return m.Called(username, password).Error(0)
}

// --- authenticator ---

type stubAuthenticator map[string]models.Actor

func (p stubAuthenticator) Authenticate(_ context.Context, token string) (models.Actor, error) {
	if actor, ok := p[token]; ok {
		return actor, nil
	}
	return models.Actor{}, errors.New("invalid or expired token")
}
