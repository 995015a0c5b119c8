package database

import (
	"context"
	"fmt"

	"pos-service/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedTables = []models.Table{
	{TableNumber: "T-01", SeatingCapacity: 2, Status: models.TableStatusAvailable},
	{TableNumber: "T-02", SeatingCapacity: 4, Status: models.TableStatusAvailable},
	{TableNumber: "T-03", SeatingCapacity: 4, Status: models.TableStatusAvailable},
	{TableNumber: "T-04", SeatingCapacity: 6, Status: models.TableStatusAvailable},
}

func seedMenu() []models.MenuItem {
	item := func(name string, category models.MenuCategory, price string) models.MenuItem {
		return models.MenuItem{Name: name, Category: category, Price: decimal.RequireFromString(price), IsAvailable: true}
	}
	return []models.MenuItem{
		item("Paneer Tikka", models.CategoryStarter, "220.00"),
		item("Veg Spring Rolls", models.CategoryStarter, "180.00"),
		item("Butter Chicken", models.CategoryMain, "340.00"),
		item("Dal Makhani", models.CategoryMain, "260.00"),
		item("Masala Chai", models.CategoryDrinks, "40.00"),
		item("Fresh Lime Soda", models.CategoryDrinks, "60.00"),
		item("Gulab Jamun", models.CategoryDessert, "90.00"),
	}
}

// Seed inserts demo tables and a starter menu. Running it again is a no-op.
func Seed(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	tables := make([]models.Table, len(seedTables))
	copy(tables, seedTables)
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "table_number"}}, DoNothing: true}).
		Create(&tables)
	if res.Error != nil {
		return fmt.Errorf("seed tables: %w", res.Error)
	}

	var menuCount int64
	if err := db.WithContext(ctx).Model(&models.MenuItem{}).Count(&menuCount).Error; err != nil {
		return fmt.Errorf("count menu items: %w", err)
	}
	var menuSeeded int
	if menuCount == 0 {
		menu := seedMenu()
		if err := db.WithContext(ctx).Create(&menu).Error; err != nil {
			return fmt.Errorf("seed menu: %w", err)
		}
		menuSeeded = len(menu)
	}

	logger.Info("Seed data applied",
		zap.Int64("tables_inserted", res.RowsAffected),
		zap.Int("menu_items_inserted", menuSeeded))
	return nil
}
