package models

import "time"

// TableStatus is the occupancy state of a dining table.
type TableStatus string

const (
	TableStatusAvailable     TableStatus = "Available"
	TableStatusOccupied      TableStatus = "Occupied"
	TableStatusBillRequested TableStatus = "Bill Requested"
	TableStatusClosed        TableStatus = "Closed"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusBillRequested, TableStatusClosed:
		return true
	}
	return false
}

// Table is a dining table persisted in Postgres.
type Table struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	TableNumber     string      `gorm:"type:varchar(10);uniqueIndex;not null" json:"table_number"`
	SeatingCapacity int         `gorm:"not null;check:seating_capacity >= 1" json:"seating_capacity"`
	Status          TableStatus `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
