package controllers

import (
	"net/http"

	"pos-service/models"
	"pos-service/services"

	"github.com/gin-gonic/gin"
)

// MenuController handles HTTP requests for the menu catalog.
type MenuController struct {
	menuService services.MenuService
}

func NewMenuController(menuService services.MenuService) *MenuController {
	return &MenuController{menuService: menuService}
}

// ListMenuItems handles GET /api/menu.
func (mc *MenuController) ListMenuItems(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	items, svcErr := mc.menuService.ListMenuItems(ctx.Request.Context(), actor)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	data := make([]models.MenuItemResponse, 0, len(items))
	for i := range items {
		data = append(data, models.NewMenuItemResponse(&items[i]))
	}
	respond(ctx, http.StatusOK, "Menu items retrieved", data)
}

// CreateMenuItem handles POST /api/menu.
func (mc *MenuController) CreateMenuItem(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req models.CreateMenuItemRequest
	if !bindJSON(ctx, &req) {
		return
	}
	item, svcErr := mc.menuService.CreateMenuItem(ctx.Request.Context(), actor, &req)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusCreated, "Menu item created successfully", models.NewMenuItemResponse(item))
}

// UpdateMenuItem handles PUT /api/menu/:id.
func (mc *MenuController) UpdateMenuItem(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateMenuItemRequest
	if !bindJSON(ctx, &req) {
		return
	}
	item, svcErr := mc.menuService.UpdateMenuItem(ctx.Request.Context(), actor, id, &req)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Menu item updated successfully", models.NewMenuItemResponse(item))
}

// DeleteMenuItem handles DELETE /api/menu/:id.
func (mc *MenuController) DeleteMenuItem(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	item, svcErr := mc.menuService.DeleteMenuItem(ctx.Request.Context(), actor, id)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Menu item '"+item.Name+"' deleted successfully", nil)
}
