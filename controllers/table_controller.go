package controllers

import (
	"net/http"

	"pos-service/models"
	"pos-service/services"

	"github.com/gin-gonic/gin"
)

// TableController handles HTTP requests for dining tables.
type TableController struct {
	tableService services.TableService
	orderService services.OrderService
}

func NewTableController(tableService services.TableService, orderService services.OrderService) *TableController {
	return &TableController{tableService: tableService, orderService: orderService}
}

// ListTables handles GET /api/tables.
func (tc *TableController) ListTables(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	tables, svcErr := tc.tableService.ListTables(ctx.Request.Context(), actor)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	data := make([]models.TableResponse, 0, len(tables))
	for i := range tables {
		data = append(data, models.NewTableResponse(&tables[i]))
	}
	respond(ctx, http.StatusOK, "Tables retrieved", data)
}

// CreateTable handles POST /api/tables.
func (tc *TableController) CreateTable(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req models.CreateTableRequest
	if !bindJSON(ctx, &req) {
		return
	}
	table, svcErr := tc.tableService.CreateTable(ctx.Request.Context(), actor, &req)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusCreated, "Table created successfully", models.NewTableResponse(table))
}

// UpdateTable handles PUT /api/tables/:id.
func (tc *TableController) UpdateTable(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req models.UpdateTableRequest
	if !bindJSON(ctx, &req) {
		return
	}
	table, svcErr := tc.tableService.UpdateTable(ctx.Request.Context(), actor, id, &req)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Table updated successfully", models.NewTableResponse(table))
}

// DeleteTable handles DELETE /api/tables/:id.
func (tc *TableController) DeleteTable(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if svcErr := tc.tableService.DeleteTable(ctx.Request.Context(), actor, id); svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Table deleted successfully", nil)
}

// ListTablesReadyForBill handles GET /api/tables/ready-for-bill.
func (tc *TableController) ListTablesReadyForBill(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	rows, svcErr := tc.tableService.ListTablesReadyForBill(ctx.Request.Context(), actor)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	data := make([]models.ReadyForBillResponse, 0, len(rows))
	for _, r := range rows {
		data = append(data, models.NewReadyForBillResponse(r))
	}
	respond(ctx, http.StatusOK, "Tables ready for billing", data)
}

// ListTableOrders handles GET /api/tables/:id/orders.
func (tc *TableController) ListTableOrders(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	orders, svcErr := tc.orderService.ListTableOrders(ctx.Request.Context(), actor, id)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Orders retrieved", orderResponses(orders))
}

func orderResponses(orders []models.Order) []models.OrderResponse {
	data := make([]models.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, models.NewOrderResponse(&orders[i]))
	}
	return data
}
