package controllers

import (
	"net/http"

	"pos-service/models"
	"pos-service/services"

	"github.com/gin-gonic/gin"
)

// BillController handles HTTP requests for billing and the cashier dashboard.
type BillController struct {
	billingService services.BillingService
}

func NewBillController(billingService services.BillingService) *BillController {
	return &BillController{billingService: billingService}
}

// GenerateBill handles POST /api/bills.
func (bc *BillController) GenerateBill(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req models.GenerateBillRequest
	if !bindJSON(ctx, &req) {
		return
	}
	bill, svcErr := bc.billingService.GenerateBill(ctx.Request.Context(), actor, req.TableID)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusCreated, "Bill generated successfully", models.NewBillResponse(bill))
}

// MarkBillPaid handles PUT /api/bills/:id/pay.
func (bc *BillController) MarkBillPaid(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	bill, svcErr := bc.billingService.MarkBillPaid(ctx.Request.Context(), actor, id)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Bill marked as paid", models.NewBillResponse(bill))
}

// GetBill handles GET /api/bills/:id.
func (bc *BillController) GetBill(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	bill, svcErr := bc.billingService.GetBill(ctx.Request.Context(), actor, id)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Bill retrieved", models.NewBillResponse(bill))
}

// ListPendingBills handles GET /api/bills/pending.
func (bc *BillController) ListPendingBills(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	bills, svcErr := bc.billingService.ListPendingBills(ctx.Request.Context(), actor)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Pending bills retrieved", billResponses(bills))
}

// ListOverdueBills handles GET /api/bills/overdue.
func (bc *BillController) ListOverdueBills(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	bills, svcErr := bc.billingService.ListOverdueBills(ctx.Request.Context(), actor)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Overdue bills retrieved", billResponses(bills))
}

// CashierStats handles GET /api/cashier/stats.
func (bc *BillController) CashierStats(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	stats, svcErr := bc.billingService.CashierStats(ctx.Request.Context(), actor)
	if svcErr != nil {
		respondServiceError(ctx, svcErr)
		return
	}
	respond(ctx, http.StatusOK, "Cashier stats retrieved", models.NewCashierStatsResponse(stats))
}

func billResponses(bills []models.Bill) []models.BillResponse {
	data := make([]models.BillResponse, 0, len(bills))
	for i := range bills {
		data = append(data, models.NewBillResponse(&bills[i]))
	}
	return data
}
