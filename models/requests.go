package models

import "github.com/shopspring/decimal"

// CreateTableRequest is the payload for adding a table.
type CreateTableRequest struct {
	TableNumber     string `json:"table_number"`
	SeatingCapacity int    `json:"seating_capacity"`
}

// UpdateTableRequest carries partial overrides; nil fields are left as they are.
type UpdateTableRequest struct {
	TableNumber     *string      `json:"table_number"`
	SeatingCapacity *int         `json:"seating_capacity"`
	Status          *TableStatus `json:"status" binding:"omitempty,table_status"`
}

// CreateMenuItemRequest is the payload for adding a menu item.
type CreateMenuItemRequest struct {
	Name        string           `json:"name"`
	Category    MenuCategory     `json:"category" binding:"omitempty,menu_category"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"is_available"`
}

// UpdateMenuItemRequest carries partial overrides for a menu item.
type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Category    *MenuCategory    `json:"category" binding:"omitempty,menu_category"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"is_available"`
}

// OrderLineRequest is one (menu item, quantity) pair of a new order.
type OrderLineRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// CreateOrderRequest is the payload for placing an order at a table.
type CreateOrderRequest struct {
	TableID uint               `json:"table_id"`
	Items   []OrderLineRequest `json:"items"`
}

// UpdateOrderStatusRequest moves an order through the kitchen.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,order_status"`
}

// GenerateBillRequest asks for a bill covering a table's served orders.
type GenerateBillRequest struct {
	TableID uint `json:"table_id"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the payload for adding a staff account.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	RoleID    Role   `json:"role_id" binding:"omitempty,role"`
}
