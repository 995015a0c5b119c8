package models

import "time"

// Event types published to SNS.
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusUpdated = "order_status_updated"
	EventBillGenerated      = "bill_generated"
	EventBillPaid           = "bill_paid"
)

// OrderEvent is published when an order is created or its status changes.
type OrderEvent struct {
	EventType   string    `json:"event_type"`
	OrderID     uint      `json:"order_id"`
	TableID     uint      `json:"table_id"`
	TableNumber string    `json:"table_number,omitempty"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	ActorID     uint      `json:"actor_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// BillEvent is published when a bill is generated or paid.
type BillEvent struct {
	EventType   string    `json:"event_type"`
	BillID      uint      `json:"bill_id"`
	TableID     uint      `json:"table_id"`
	TableNumber string    `json:"table_number,omitempty"`
	Status      string    `json:"status"`
	Subtotal    string    `json:"subtotal"`
	TaxAmount   string    `json:"tax_amount"`
	TotalAmount string    `json:"total_amount"`
	OrderIDs    []uint    `json:"order_ids,omitempty"`
	ActorID     uint      `json:"actor_id"`
	Timestamp   time.Time `json:"timestamp"`
}
