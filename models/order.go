package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus tracks an order through the kitchen.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusInKitchen OrderStatus = "In Kitchen"
	OrderStatusServed    OrderStatus = "Served"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPlaced:    0,
	OrderStatusInKitchen: 1,
	OrderStatusServed:    2,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// Precedes reports whether s comes strictly before next in
// Placed -> In Kitchen -> Served.
func (s OrderStatus) Precedes(next OrderStatus) bool {
	return orderStatusRank[s] < orderStatusRank[next]
}

// Order is one round of items placed for a table. A table accumulates many
// orders over time; each is billed at most once.
type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	TableID     uint            `gorm:"not null;index" json:"table_id"`
	Table       *Table          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BillID      *uint           `gorm:"index" json:"bill_id,omitempty"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'Placed';index" json:"status"`
	CreatedByID *uint           `gorm:"index" json:"created_by_id,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_amount"`
	IsBilled    bool            `gorm:"not null;default:false;index" json:"is_billed"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// RecomputeTotal sets TotalAmount to the sum of the line subtotals.
func (o *Order) RecomputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal)
	}
	o.TotalAmount = total
	return total
}

// OrderItem is a single line of an order. PriceAtOrder is copied from the
// menu when the order is created and never re-read from the menu afterwards.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	MenuItemID   *uint           `gorm:"index" json:"menu_item_id"`
	MenuItem     *MenuItem       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	ItemName     string          `gorm:"type:varchar(100);not null" json:"item_name"`
	Quantity     int             `gorm:"not null;check:quantity >= 1" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_at_order"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// ComputeSubtotal sets Subtotal = PriceAtOrder x Quantity.
func (i *OrderItem) ComputeSubtotal() decimal.Decimal {
	i.Subtotal = i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
	return i.Subtotal
}

// BeforeSave keeps Subtotal in step with price and quantity on every write.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.ComputeSubtotal()
	return nil
}
