package services

import (
	"context"
	"strings"

	"pos-service/models"
	aws_pkg "pos-service/pkg/aws"
	"pos-service/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var maxMenuPrice = decimal.New(1, 8)

// MenuCache caches the full menu catalog. Implementations must treat every
// failure as a miss. Get reports the cache version it looked at; Set stores
// under that version, and Invalidate moves to a new one.
type MenuCache interface {
	Get(ctx context.Context) ([]models.MenuItem, int64, bool)
	Set(ctx context.Context, version int64, items []models.MenuItem)
	Invalidate(ctx context.Context)
}

// MenuService manages the menu catalog.
type MenuService interface {
	CreateMenuItem(ctx context.Context, actor models.Actor, req *models.CreateMenuItemRequest) (*models.MenuItem, *ServiceError)
	UpdateMenuItem(ctx context.Context, actor models.Actor, id uint, req *models.UpdateMenuItemRequest) (*models.MenuItem, *ServiceError)
	DeleteMenuItem(ctx context.Context, actor models.Actor, id uint) (*models.MenuItem, *ServiceError)
	ListMenuItems(ctx context.Context, actor models.Actor) ([]models.MenuItem, *ServiceError)
}

type menuServiceImpl struct {
	store   repository.Store
	cache   MenuCache
	metrics Metrics
	logger  *zap.Logger
}

// NewMenuService creates a new MenuService. cache and metrics may be nil.
func NewMenuService(store repository.Store, cache MenuCache, metrics Metrics, logger *zap.Logger) MenuService {
	return &menuServiceImpl{store: store, cache: cache, metrics: metrics, logger: logger}
}

func validatePrice(p decimal.Decimal) *ServiceError {
	if p.IsNegative() {
		return invalidInput("Price must be non-negative")
	}
	if !p.Equal(p.Round(2)) {
		return invalidInput("Price must have at most 2 decimal places")
	}
	if p.GreaterThanOrEqual(maxMenuPrice) {
		return invalidInput("Price is too large")
	}
	return nil
}

func (s *menuServiceImpl) CreateMenuItem(ctx context.Context, actor models.Actor, req *models.CreateMenuItemRequest) (*models.MenuItem, *ServiceError) {
	if svcErr := Authorize(actor, OpCreateMenuItem); svcErr != nil {
		return nil, svcErr
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.Category == "" || req.Price == nil {
		return nil, invalidInput("Name, category and price required")
	}
	if len(name) > 100 {
		return nil, invalidInput("Name must be at most 100 characters")
	}
	if !req.Category.Valid() {
		return nil, invalidInput("Invalid category")
	}
	if svcErr := validatePrice(*req.Price); svcErr != nil {
		return nil, svcErr
	}

	item := &models.MenuItem{
		Name:        name,
		Category:    req.Category,
		Price:       *req.Price,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := s.store.MenuItems().Create(ctx, item); err != nil {
		s.logger.Error("Failed to create menu item", zap.String("name", name), zap.Error(err))
		return nil, unexpected(err)
	}
	// gorm skips zero values that carry a column default on insert.
	if !item.IsAvailable {
		if err := s.store.MenuItems().Update(ctx, item); err != nil {
			return nil, unexpected(err)
		}
	}

	s.invalidate(ctx)
	s.logger.Info("Menu item created", zap.Uint("menu_item_id", item.ID), zap.String("name", item.Name))
	return item, nil
}

func (s *menuServiceImpl) UpdateMenuItem(ctx context.Context, actor models.Actor, id uint, req *models.UpdateMenuItemRequest) (*models.MenuItem, *ServiceError) {
	if svcErr := Authorize(actor, OpUpdateMenuItem); svcErr != nil {
		return nil, svcErr
	}

	item, err := s.store.MenuItems().FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Menu item not found")
		}
		return nil, unexpected(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 100 {
			return nil, invalidInput("Name must be 1 to 100 characters")
		}
		item.Name = name
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, invalidInput("Invalid category")
		}
		item.Category = *req.Category
	}
	if req.Price != nil {
		if svcErr := validatePrice(*req.Price); svcErr != nil {
			return nil, svcErr
		}
		item.Price = *req.Price
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := s.store.MenuItems().Update(ctx, item); err != nil {
		s.logger.Error("Failed to update menu item", zap.Uint("menu_item_id", id), zap.Error(err))
		return nil, unexpected(err)
	}

	s.invalidate(ctx)
	return item, nil
}

// DeleteMenuItem removes the item even when past orders reference it; those
// order lines keep their own name and price snapshot.
func (s *menuServiceImpl) DeleteMenuItem(ctx context.Context, actor models.Actor, id uint) (*models.MenuItem, *ServiceError) {
	if svcErr := Authorize(actor, OpDeleteMenuItem); svcErr != nil {
		return nil, svcErr
	}

	item, err := s.store.MenuItems().FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("Menu item not found")
		}
		return nil, unexpected(err)
	}
	if err := s.store.MenuItems().Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return nil, notFound("Menu item not found")
		}
		s.logger.Error("Failed to delete menu item", zap.Uint("menu_item_id", id), zap.Error(err))
		return nil, unexpected(err)
	}

	s.invalidate(ctx)
	s.logger.Info("Menu item deleted", zap.Uint("menu_item_id", id), zap.String("name", item.Name))
	return item, nil
}

// ListMenuItems returns the catalog. Waiters only see available items.
func (s *menuServiceImpl) ListMenuItems(ctx context.Context, actor models.Actor) ([]models.MenuItem, *ServiceError) {
	if svcErr := Authorize(actor, OpListMenuItems); svcErr != nil {
		return nil, svcErr
	}

	items, svcErr := s.catalog(ctx)
	if svcErr != nil {
		return nil, svcErr
	}
	if actor.Role != models.RoleWaiter {
		return items, nil
	}

	available := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.IsAvailable {
			available = append(available, item)
		}
	}
	return available, nil
}

func (s *menuServiceImpl) catalog(ctx context.Context) ([]models.MenuItem, *ServiceError) {
	var version int64 = -1
	if s.cache != nil {
		items, v, ok := s.cache.Get(ctx)
		if ok {
			recordCount(ctx, s.metrics, s.logger, aws_pkg.MetricMenuCacheHits, nil)
			return items, nil
		}
		version = v
		recordCount(ctx, s.metrics, s.logger, aws_pkg.MetricMenuCacheMiss, nil)
	}

	items, err := s.store.MenuItems().FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list menu items", zap.Error(err))
		return nil, unexpected(err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, version, items)
	}
	return items, nil
}

func (s *menuServiceImpl) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
