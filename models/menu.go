package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuCategory groups menu items on the printed menu.
type MenuCategory string

const (
	CategoryStarter MenuCategory = "Starter"
	CategoryMain    MenuCategory = "Main"
	CategoryDrinks  MenuCategory = "Drinks"
	CategoryDessert MenuCategory = "Dessert"
)

func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryStarter, CategoryMain, CategoryDrinks, CategoryDessert:
		return true
	}
	return false
}

// MenuItem is a dish or drink that can be ordered. Order lines snapshot the
// price, so changing or deleting an item never touches historical orders.
type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Category    MenuCategory    `gorm:"type:varchar(20);not null;index" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;check:price >= 0" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
