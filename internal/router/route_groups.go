package router

import (
	"playground_pos_backend/internal/handlers"
	"playground_pos_backend/internal/middleware"
	"playground_pos_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the public authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.RefreshToken)
	}
}

// SetupAuthenticatedAuthRoutes sets up the session routes behind auth.
func SetupAuthenticatedAuthRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := authenticatedGroup.Group("/auth")
	{
		authRoutes.GET("/me", authHandler.Me)
		authRoutes.POST("/logout", authHandler.Logout)
	}
}

// SetupAttendancePunchRoutes sets up the punch-terminal routes. The wall
// terminal at the staff entrance has no login session, so these stay public.
func SetupAttendancePunchRoutes(apiGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	punchRoutes := apiGroup.Group("/attendance")
	{
		punchRoutes.POST("/clock-in", attendanceHandler.ClockIn)
		punchRoutes.POST("/clock-out", attendanceHandler.ClockOut)
		punchRoutes.GET("/status/:employee_id", attendanceHandler.GetStatus)
	}
}

// SetupAttendanceRoutes sets up the attendance review routes.
func SetupAttendanceRoutes(authenticatedGroup *gin.RouterGroup, attendanceHandler *handlers.AttendanceHandler) {
	attendanceRoutes := authenticatedGroup.Group("/attendance")
	attendanceRoutes.Use(middleware.RoleAuthMiddleware(models.RoleOwner, models.RoleManager, models.RoleAdmin))
	{
		attendanceRoutes.GET("/entries", attendanceHandler.GetEntries)
	}
}

// SetupEmployeeRoutes sets up the employee management routes.
func SetupEmployeeRoutes(authenticatedGroup *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler) {
	employeeRoutes := authenticatedGroup.Group("/employees")
	employeeRoutes.Use(middleware.RoleAuthMiddleware(models.RoleOwner, models.RoleManager, models.RoleAdmin))
	{
		employeeRoutes.POST("", employeeHandler.RegisterEmployee)
		employeeRoutes.GET("", employeeHandler.GetEmployees)
		employeeRoutes.GET("/:id", employeeHandler.GetEmployeeByID)
		employeeRoutes.PUT("/:id", employeeHandler.UpdateEmployee)
		employeeRoutes.DELETE("/:id", employeeHandler.DeleteEmployee)
	}
}

// SetupMemberRoutes sets up the member registration routes.
func SetupMemberRoutes(authenticatedGroup *gin.RouterGroup, memberHandler *handlers.MemberHandler) {
	memberRoutes := authenticatedGroup.Group("/members")
	memberRoutes.Use(middleware.RoleAuthMiddleware(
		models.RoleOwner, models.RoleManager, models.RoleSupervisor, models.RoleKasir, models.RoleAdmin))
	{
		memberRoutes.POST("", memberHandler.RegisterMember)
		memberRoutes.GET("", memberHandler.GetMembers)
		memberRoutes.GET("/:id", memberHandler.GetMemberByID)
		memberRoutes.GET("/barcode/:barcode", memberHandler.LookupByBarcode)
		memberRoutes.PUT("/:id", memberHandler.UpdateMember)
		memberRoutes.POST("/:id/renew", memberHandler.RenewMember)
		memberRoutes.DELETE("/:id", memberHandler.DeleteMember)
	}
}

// SetupVisitRoutes sets up the visitor check-in routes.
func SetupVisitRoutes(authenticatedGroup *gin.RouterGroup, visitHandler *handlers.VisitHandler) {
	visitRoutes := authenticatedGroup.Group("/visits")
	visitRoutes.Use(middleware.RoleAuthMiddleware(
		models.RoleOwner, models.RoleManager, models.RoleSupervisor, models.RoleKasir, models.RoleAdmin))
	{
		visitRoutes.GET("/next-ticket", visitHandler.PeekTicket)
		visitRoutes.POST("", visitHandler.CheckIn)
		visitRoutes.GET("", visitHandler.GetActiveVisits)
		visitRoutes.GET("/:sequence", visitHandler.GetVisit)
		visitRoutes.DELETE("/:sequence", visitHandler.CancelVisit)
	}
}

// SetupOrderRoutes sets up the cafe order routes. Orders hang off the visit
// ticket number so the cashier screen works from a single identifier.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	frontDesk := middleware.RoleAuthMiddleware(
		models.RoleOwner, models.RoleManager, models.RoleSupervisor, models.RoleKasir, models.RoleAdmin)

	orderRoutes := authenticatedGroup.Group("/visits/:sequence/order")
	orderRoutes.Use(frontDesk)
	{
		orderRoutes.GET("", orderHandler.GetOrder)
		orderRoutes.POST("/items", orderHandler.AddItem)
		orderRoutes.PUT("/items/:item_id", orderHandler.UpdateItemQty)
		orderRoutes.DELETE("/items/:item_id", orderHandler.RemoveItem)
	}

	openOrderRoutes := authenticatedGroup.Group("/orders")
	openOrderRoutes.Use(frontDesk)
	{
		openOrderRoutes.GET("/open", orderHandler.GetOpenOrders)
	}
}

// SetupCashierRoutes sets up the checkout routes.
func SetupCashierRoutes(authenticatedGroup *gin.RouterGroup, cashierHandler *handlers.CashierHandler) {
	cashierRoutes := authenticatedGroup.Group("/cashier")
	cashierRoutes.Use(middleware.RoleAuthMiddleware(
		models.RoleOwner, models.RoleManager, models.RoleSupervisor, models.RoleKasir, models.RoleAdmin))
	{
		cashierRoutes.GET("/:sequence/quote", cashierHandler.Quote)
		cashierRoutes.POST("/:sequence/finalize", cashierHandler.Finalize)
	}
}

// SetupInventoryRoutes sets up the inventory item routes.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	itemRoutes := authenticatedGroup.Group("/inventory")
	itemRoutes.Use(middleware.RoleAuthMiddleware(
		models.RoleOwner, models.RoleManager, models.RoleSupervisor, models.RoleAdmin))
	{
		itemRoutes.POST("", inventoryHandler.CreateItem)
		itemRoutes.GET("", inventoryHandler.GetItems)
		itemRoutes.GET("/:id", inventoryHandler.GetItemByID)
		itemRoutes.PUT("/:id", inventoryHandler.UpdateItem)
		itemRoutes.DELETE("/:id", inventoryHandler.DeleteItem)
	}
}

// SetupAssetRoutes sets up the fixed asset routes.
func SetupAssetRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	assetRoutes := authenticatedGroup.Group("/assets")
	assetRoutes.Use(middleware.RoleAuthMiddleware(
		models.RoleOwner, models.RoleManager, models.RoleSupervisor, models.RoleAdmin))
	{
		assetRoutes.POST("", inventoryHandler.CreateAsset)
		assetRoutes.GET("", inventoryHandler.GetAssets)
		assetRoutes.PUT("/:id", inventoryHandler.UpdateAsset)
		assetRoutes.DELETE("/:id", inventoryHandler.DeleteAsset)
	}
}

// SetupReportRoutes sets up the transaction report routes. Clearing history is
// destructive, so it is restricted to the owner.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleOwner, models.RoleManager, models.RoleAdmin))
	{
		reportRoutes.GET("/transactions", reportHandler.GetTransactions)
		reportRoutes.GET("/transactions/:id", reportHandler.GetTransactionByID)
		reportRoutes.GET("/transactions/:id/receipt", reportHandler.Receipt)
		reportRoutes.GET("/summary", reportHandler.GetSummary)
		reportRoutes.GET("/dashboard", reportHandler.GetDashboard)
		reportRoutes.GET("/export", reportHandler.ExportExcel)
	}

	ownerReportRoutes := authenticatedGroup.Group("/reports")
	ownerReportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleOwner))
	{
		ownerReportRoutes.DELETE("/transactions", reportHandler.ClearHistory)
	}
}

// SetupSettingsRoutes sets up the settings and data reset routes.
func SetupSettingsRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingsRoutes := authenticatedGroup.Group("/settings")
	settingsRoutes.Use(middleware.RoleAuthMiddleware(models.RoleOwner, models.RoleManager))
	{
		settingsRoutes.GET("", settingHandler.GetSettings)
		settingsRoutes.PUT("", settingHandler.UpdateSettings)
	}

	ownerSettingsRoutes := authenticatedGroup.Group("/settings")
	ownerSettingsRoutes.Use(middleware.RoleAuthMiddleware(models.RoleOwner))
	{
		ownerSettingsRoutes.POST("/reset", settingHandler.ResetAllData)
	}
}

// SetupActivityLogRoutes sets up the activity log routes.
func SetupActivityLogRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	activityRoutes := authenticatedGroup.Group("/activity-logs")
	activityRoutes.Use(middleware.RoleAuthMiddleware(models.RoleOwner, models.RoleManager, models.RoleAdmin))
	{
		activityRoutes.GET("", settingHandler.GetActivityLogs)
	}
}
