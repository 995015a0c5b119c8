package routes

import (
	"net/http"

	"pos-service/controllers"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler the API exposes.
type Controllers struct {
	Tables *controllers.TableController
	Menu   *controllers.MenuController
	Orders *controllers.OrderController
	Bills  *controllers.BillController
	Users  *controllers.UserController
}

// RegisterRoutes mounts the health check, the public login endpoint and the
// authenticated /api routes.
func RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, c Controllers) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "service": "pos-service"})
	})

	api := r.Group("/api")
	api.POST("/auth/login", c.Users.Login)

	protected := api.Group("")
	protected.Use(auth)

	RegisterTableRoutes(protected, c.Tables)
	RegisterMenuRoutes(protected, c.Menu)
	RegisterOrderRoutes(protected, c.Orders)
	RegisterBillRoutes(protected, c.Bills)
	RegisterUserRoutes(protected, c.Users)
}

func RegisterTableRoutes(rg *gin.RouterGroup, tc *controllers.TableController) {
	tables := rg.Group("/tables")
	tables.GET("", tc.ListTables)
	tables.POST("", tc.CreateTable)
	tables.GET("/ready-for-bill", tc.ListTablesReadyForBill)
	tables.PUT("/:id", tc.UpdateTable)
	tables.DELETE("/:id", tc.DeleteTable)
	tables.GET("/:id/orders", tc.ListTableOrders)
}

func RegisterMenuRoutes(rg *gin.RouterGroup, mc *controllers.MenuController) {
	menu := rg.Group("/menu")
	menu.GET("", mc.ListMenuItems)
	menu.POST("", mc.CreateMenuItem)
	menu.PUT("/:id", mc.UpdateMenuItem)
	menu.DELETE("/:id", mc.DeleteMenuItem)
}

func RegisterOrderRoutes(rg *gin.RouterGroup, oc *controllers.OrderController) {
	orders := rg.Group("/orders")
	orders.POST("", oc.CreateOrder)
	orders.GET("/:id", oc.GetOrder)
	orders.PUT("/:id/status", oc.UpdateOrderStatus)
}

func RegisterBillRoutes(rg *gin.RouterGroup, bc *controllers.BillController) {
	bills := rg.Group("/bills")
	bills.POST("", bc.GenerateBill)
	bills.GET("/pending", bc.ListPendingBills)
	bills.GET("/overdue", bc.ListOverdueBills)
	bills.GET("/:id", bc.GetBill)
	bills.PUT("/:id/pay", bc.MarkBillPaid)

	rg.GET("/cashier/stats", bc.CashierStats)
}

func RegisterUserRoutes(rg *gin.RouterGroup, uc *controllers.UserController) {
	users := rg.Group("/users")
	users.GET("", uc.ListUsers)
	users.POST("", uc.CreateUser)
	users.DELETE("/:id", uc.DeleteUser)
}
