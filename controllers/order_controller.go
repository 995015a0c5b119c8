package controllers

import (
	"net/http"

	"pos-service/models"
	"pos-service/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for orders.
type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /api/orders.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req models.CreateOrderRequest
	if !bindJSON(ctx, &req) {
		return
	}
	order, svcErr := oc.orderService.CreateOrder(ctx.Request.Context(), actor, &req)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusCreated, "Order created successfully", models.NewOrderResponse(order))
}

// GetOrder handles GET /api/orders/:id.
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	order, svcErr := oc.orderService.GetOrder(ctx.Request.Context(), actor, id)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Order retrieved", models.NewOrderResponse(order))
}

// UpdateOrderStatus handles PUT /api/orders/:id/status.
func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	order, svcErr := oc.orderService.UpdateOrderStatus(ctx.Request.Context(), actor, id, req.Status)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Order status updated to "+string(order.Status), models.NewOrderResponse(order))
}
