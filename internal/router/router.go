package router

import (
	"database/sql"

	"playground_pos_backend/internal/handlers"
	"playground_pos_backend/internal/middleware"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup wires repositories, services and handlers and registers all routes.
func Setup(engine *gin.Engine, db *sql.DB) services.AttendanceService {
	// Repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	visitRepo := repositories.NewVisitRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Services
	authService := services.NewAuthService(employeeRepo)
	employeeService := services.NewEmployeeService(employeeRepo, db)
	attendanceService := services.NewAttendanceService(attendanceRepo, employeeRepo, db)
	memberService := services.NewMemberService(memberRepo, db)
	visitService := services.NewVisitService(visitRepo, memberRepo, orderRepo, inventoryRepo, settingsRepo, db)
	orderService := services.NewOrderService(orderRepo, inventoryRepo, visitRepo, db)
	inventoryService := services.NewInventoryService(inventoryRepo, assetRepo, db)
	cashierService := services.NewCashierService(visitRepo, orderRepo, transactionRepo, settingsRepo, db)
	reportService := services.NewReportService(transactionRepo, memberRepo, employeeRepo, settingsRepo, db)
	settingsService := services.NewSettingsService(settingsRepo, db)
	activityService := services.NewActivityService(activityRepo, db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, employeeService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, activityService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	memberHandler := handlers.NewMemberHandler(memberService, activityService)
	visitHandler := handlers.NewVisitHandler(visitService, activityService)
	orderHandler := handlers.NewOrderHandler(orderService, activityService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, activityService)
	cashierHandler := handlers.NewCashierHandler(cashierService, activityService)
	reportHandler := handlers.NewReportHandler(reportService, activityService)
	settingHandler := handlers.NewSettingHandler(settingsService, activityService)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := engine.Group("/api/v1")

	// Public routes: login, token refresh and the staff punch terminal.
	SetupAuthRoutes(apiV1, authHandler)
	SetupAttendancePunchRoutes(apiV1, attendanceHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated, authHandler)
		SetupEmployeeRoutes(authenticated, employeeHandler)
		SetupAttendanceRoutes(authenticated, attendanceHandler)
		SetupMemberRoutes(authenticated, memberHandler)
		SetupVisitRoutes(authenticated, visitHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupCashierRoutes(authenticated, cashierHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupAssetRoutes(authenticated, inventoryHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupSettingsRoutes(authenticated, settingHandler)
		SetupActivityLogRoutes(authenticated, settingHandler)
	}

	// The attendance service is returned so the caller can schedule the
	// nightly auto close of open entries.
	return attendanceService
}
