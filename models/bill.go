package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillStatusNotGenerated   BillStatus = "Not Generated"
	BillStatusPendingPayment BillStatus = "Pending Payment"
	BillStatusPaid           BillStatus = "Paid"
)

// DefaultTaxPercentage is applied when no tax rate is configured.
var DefaultTaxPercentage = decimal.RequireFromString("5.00")

var hundred = decimal.NewFromInt(100)

// Bill aggregates the served, not yet billed orders of a table.
type Bill struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	TableID       uint            `gorm:"not null;index" json:"table_id"`
	Table         *Table          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"subtotal"`
	TaxPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:5.00" json:"tax_percentage"`
	TaxAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"tax_amount"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_amount"`
	Status        BillStatus      `gorm:"type:varchar(20);not null;default:'Pending Payment';index" json:"status"`
	GeneratedAt   time.Time       `gorm:"autoCreateTime;index" json:"generated_at"`
	PaidAt        *time.Time      `json:"paid_at"`
	GeneratedByID *uint           `gorm:"index" json:"generated_by_id,omitempty"`
	Orders        []Order         `gorm:"foreignKey:BillID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
}

// Calculate fills Subtotal from every line of the given orders and derives
// tax and total from it.
func (b *Bill) Calculate(orders []Order) {
	subtotal := decimal.Zero
	for _, o := range orders {
		for _, item := range o.Items {
			subtotal = subtotal.Add(item.Subtotal)
		}
	}
	b.Subtotal = subtotal.Round(2)
	b.ApplyTax()
}

// ApplyTax recomputes TaxAmount and TotalAmount from Subtotal and
// TaxPercentage, rounded to two places.
func (b *Bill) ApplyTax() {
	b.TaxAmount = b.Subtotal.Mul(b.TaxPercentage).Div(hundred).Round(2)
	b.TotalAmount = b.Subtotal.Add(b.TaxAmount)
}
