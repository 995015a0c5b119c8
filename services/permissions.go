package services

import "pos-service/models"

// Operation names an action guarded by the role matrix.
type Operation string

const (
	OpListTables            Operation = "listTables"
	OpCreateTable           Operation = "createTable"
	OpUpdateTable           Operation = "updateTable"
	OpDeleteTable           Operation = "deleteTable"
	OpListTablesReadyToBill Operation = "listTablesReadyForBill"
	OpListMenuItems         Operation = "listMenuItems"
	OpCreateMenuItem        Operation = "createMenuItem"
	OpUpdateMenuItem        Operation = "updateMenuItem"
	OpDeleteMenuItem        Operation = "deleteMenuItem"
	OpCreateOrder           Operation = "createOrder"
	OpUpdateOrderStatus     Operation = "updateOrderStatus"
	OpListTableOrders       Operation = "listTableOrders"
	OpGetOrder              Operation = "getOrder"
	OpGenerateBill          Operation = "generateBill"
	OpMarkBillPaid          Operation = "markBillPaid"
	OpListPendingBills      Operation = "listPendingBills"
	OpListOverdueBills      Operation = "listOverdueBills"
	OpGetBill               Operation = "getBill"
	OpCashierStats          Operation = "cashierStats"
	OpCreateUser            Operation = "createUser"
	OpListUsers             Operation = "listUsers"
	OpDeleteUser            Operation = "deleteUser"
)

type permission struct {
	roles  []models.Role
	denied string
}

var allRoles = []models.Role{models.RoleAdmin, models.RoleManager, models.RoleWaiter, models.RoleCashier}

var permissions = map[Operation]permission{
	OpListTables:            {roles: allRoles},
	OpCreateTable:           {roles: []models.Role{models.RoleManager}, denied: "Only Manager can create tables"},
	OpUpdateTable:           {roles: []models.Role{models.RoleManager}, denied: "Only Manager can update tables"},
	OpDeleteTable:           {roles: []models.Role{models.RoleManager}, denied: "Only Manager can delete tables"},
	OpListTablesReadyToBill: {roles: []models.Role{models.RoleCashier}, denied: "Only Cashier can view tables ready for billing"},
	OpListMenuItems:         {roles: allRoles},
	OpCreateMenuItem:        {roles: []models.Role{models.RoleManager}, denied: "Only Manager can create menu items"},
	OpUpdateMenuItem:        {roles: []models.Role{models.RoleManager}, denied: "Only Manager can update menu items"},
	OpDeleteMenuItem:        {roles: []models.Role{models.RoleManager}, denied: "Only Manager can delete menu items"},
	OpCreateOrder:           {roles: []models.Role{models.RoleWaiter}, denied: "Only Waiter can create orders"},
	OpUpdateOrderStatus:     {roles: []models.Role{models.RoleWaiter}, denied: "Only Waiter can update order status"},
	OpListTableOrders:       {roles: allRoles},
	OpGetOrder:              {roles: allRoles},
	OpGenerateBill:          {roles: []models.Role{models.RoleCashier}, denied: "Only Cashier can generate bills"},
	OpMarkBillPaid:          {roles: []models.Role{models.RoleCashier}, denied: "Only Cashier can mark bills as paid"},
	OpListPendingBills:      {roles: []models.Role{models.RoleCashier}, denied: "Only Cashier can view bills"},
	OpListOverdueBills:      {roles: []models.Role{models.RoleCashier}, denied: "Only Cashier can view overdue bills"},
	OpGetBill:               {roles: []models.Role{models.RoleCashier, models.RoleManager, models.RoleAdmin}, denied: "Permission denied"},
	OpCashierStats:          {roles: []models.Role{models.RoleCashier}, denied: "Only Cashier can view cashier stats"},
	OpCreateUser:            {roles: []models.Role{models.RoleAdmin, models.RoleManager}, denied: "Permission denied"},
	OpListUsers:             {roles: []models.Role{models.RoleAdmin, models.RoleManager}, denied: "Permission denied"},
	OpDeleteUser:            {roles: []models.Role{models.RoleAdmin}, denied: "Only Admin can delete users"},
}

// Authorize checks the actor's role against the static permission matrix.
// Operations missing from the matrix are denied.
func Authorize(actor models.Actor, op Operation) *ServiceError {
	perm, ok := permissions[op]
	if !ok {
		return permissionDenied("Permission denied")
	}
	for _, role := range perm.roles {
		if actor.Role == role {
			return nil
		}
	}
	msg := perm.denied
	if msg == "" {
		msg = "Permission denied"
	}
	return permissionDenied(msg)
}
