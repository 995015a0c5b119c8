package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that take part in one unit of work. The
// Store handed to a Transaction callback routes every call through the
// same database transaction.
type Store interface {
	Tables() TableRepository
	MenuItems() MenuItemRepository
	Orders() OrderRepository
	Bills() BillRepository
	Users() UserRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// GormStore implements Store on top of a *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Tables() TableRepository       { return NewGormTableRepository(s.db) }
func (s *GormStore) MenuItems() MenuItemRepository { return NewGormMenuItemRepository(s.db) }
func (s *GormStore) Orders() OrderRepository       { return NewGormOrderRepository(s.db) }
func (s *GormStore) Bills() BillRepository         { return NewGormBillRepository(s.db) }
func (s *GormStore) Users() UserRepository         { return NewGormUserRepository(s.db) }

// Transaction runs fn inside a database transaction. Returning an error from
// fn rolls back everything written through tx.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
