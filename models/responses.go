package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts are rendered as fixed two-place strings ("240.00") in every
// response so clients never see float rounding.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type TableResponse struct {
	ID              uint        `json:"id"`
	TableNumber     string      `json:"table_number"`
	SeatingCapacity int         `json:"seating_capacity"`
	Status          TableStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

func NewTableResponse(t *Table) TableResponse {
	return TableResponse{
		ID:              t.ID,
		TableNumber:     t.TableNumber,
		SeatingCapacity: t.SeatingCapacity,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
}

// ReadyForBillTable is a table with served orders that have not been billed.
type ReadyForBillTable struct {
	TableID       uint            `json:"table_id"`
	TableNumber   string          `json:"table_number"`
	Status        TableStatus     `json:"status"`
	OrderCount    int64           `json:"order_count"`
	UnbilledTotal decimal.Decimal `json:"-"`
}

type ReadyForBillResponse struct {
	TableID       uint        `json:"table_id"`
	TableNumber   string      `json:"table_number"`
	Status        TableStatus `json:"status"`
	OrderCount    int64       `json:"order_count"`
	UnbilledTotal string      `json:"unbilled_total"`
}

func NewReadyForBillResponse(r ReadyForBillTable) ReadyForBillResponse {
	return ReadyForBillResponse{
		TableID:       r.TableID,
		TableNumber:   r.TableNumber,
		Status:        r.Status,
		OrderCount:    r.OrderCount,
		UnbilledTotal: money(r.UnbilledTotal),
	}
}

type MenuItemResponse struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Category    MenuCategory `json:"category"`
	Price       string       `json:"price"`
	IsAvailable bool         `json:"is_available"`
}

func NewMenuItemResponse(m *MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Price:       money(m.Price),
		IsAvailable: m.IsAvailable,
	}
}

type OrderItemResponse struct {
	ID         uint   `json:"id"`
	MenuItemID *uint  `json:"menu_item_id"`
	MenuItem   string `json:"menu_item"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"`
	Subtotal   string `json:"subtotal"`
}

type OrderResponse struct {
	ID          uint                `json:"order_id"`
	TableID     uint                `json:"table_id"`
	Table       string              `json:"table,omitempty"`
	Status      OrderStatus         `json:"status"`
	TotalAmount string              `json:"total_amount"`
	IsBilled    bool                `json:"is_billed"`
	BillID      *uint               `json:"bill_id"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

func NewOrderResponse(o *Order) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID,
		TableID:     o.TableID,
		Status:      o.Status,
		TotalAmount: money(o.TotalAmount),
		IsBilled:    o.IsBilled,
		BillID:      o.BillID,
		Items:       make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:   o.CreatedAt,
	}
	if o.Table != nil {
		resp.Table = o.Table.TableNumber
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			MenuItem:   item.ItemName,
			Quantity:   item.Quantity,
			Price:      money(item.PriceAtOrder),
			Subtotal:   money(item.Subtotal),
		})
	}
	return resp
}

type BillResponse struct {
	ID            uint                `json:"bill_id"`
	TableID       uint                `json:"table_id"`
	Table         string              `json:"table,omitempty"`
	TableStatus   TableStatus         `json:"table_status,omitempty"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	OrderIDs      []uint              `json:"order_ids,omitempty"`
	Subtotal      string              `json:"subtotal"`
	TaxPercentage string              `json:"tax_percentage"`
	TaxAmount     string              `json:"tax_amount"`
	TotalAmount   string              `json:"total_amount"`
	Status        BillStatus          `json:"status"`
	GeneratedAt   time.Time           `json:"generated_at"`
	PaidAt        *time.Time          `json:"paid_at"`
}

// NewBillResponse flattens the lines of every order on the bill into Items.
func NewBillResponse(b *Bill) BillResponse {
	resp := BillResponse{
		ID:            b.ID,
		TableID:       b.TableID,
		Subtotal:      money(b.Subtotal),
		TaxPercentage: money(b.TaxPercentage),
		TaxAmount:     money(b.TaxAmount),
		TotalAmount:   money(b.TotalAmount),
		Status:        b.Status,
		GeneratedAt:   b.GeneratedAt,
		PaidAt:        b.PaidAt,
	}
	if b.Table != nil {
		resp.Table = b.Table.TableNumber
		resp.TableStatus = b.Table.Status
	}
	for i := range b.Orders {
		resp.OrderIDs = append(resp.OrderIDs, b.Orders[i].ID)
		for _, item := range NewOrderResponse(&b.Orders[i]).Items {
			resp.Items = append(resp.Items, item)
		}
	}
	return resp
}

// CashierStats summarises the cashier's day.
type CashierStats struct {
	PaidToday          int64           `json:"paid_today"`
	RevenueToday       decimal.Decimal `json:"-"`
	PendingBills       int64           `json:"pending_bills"`
	PendingAmount      decimal.Decimal `json:"-"`
	OverdueBills       int64           `json:"overdue_bills"`
	TablesReadyForBill int             `json:"tables_ready_for_bill"`
}

type CashierStatsResponse struct {
	PaidToday          int64  `json:"paid_today"`
	RevenueToday       string `json:"revenue_today"`
	PendingBills       int64  `json:"pending_bills"`
	PendingAmount      string `json:"pending_amount"`
	OverdueBills       int64  `json:"overdue_bills"`
	TablesReadyForBill int    `json:"tables_ready_for_bill"`
}

func NewCashierStatsResponse(s *CashierStats) CashierStatsResponse {
	return CashierStatsResponse{
		PaidToday:          s.PaidToday,
		RevenueToday:       money(s.RevenueToday),
		PendingBills:       s.PendingBills,
		PendingAmount:      money(s.PendingAmount),
		OverdueBills:       s.OverdueBills,
		TablesReadyForBill: s.TablesReadyForBill,
	}
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	RoleID    Role      `json:"role_id"`
	RoleName  string    `json:"role_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		RoleID:    u.RoleID,
		RoleName:  u.RoleID.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if u.Email != nil {
		resp.Email = *u.Email
	}
	return resp
}

// LoginResponse is returned by a successful sign-in.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	RoleID    Role      `json:"role_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}
