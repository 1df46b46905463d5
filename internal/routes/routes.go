package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/AutoRepairsHQ/shop-manager/internal/audit"
	"github.com/AutoRepairsHQ/shop-manager/internal/config"
	"github.com/AutoRepairsHQ/shop-manager/internal/handlers"
	infraRepo "github.com/AutoRepairsHQ/shop-manager/internal/infra/repository"
	"github.com/AutoRepairsHQ/shop-manager/internal/middleware"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
	"github.com/AutoRepairsHQ/shop-manager/internal/storage"
	ucAppointment "github.com/AutoRepairsHQ/shop-manager/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	assignTechnicianUC := ucAppointment.NewAssignTechnician(
		appointmentRepo,
		auditDispatcher,
		cfg.TechnicianMaxActive,
	)

	startWorkUC := ucAppointment.NewStartWork(
		appointmentRepo,
		auditDispatcher,
	)

	completeWorkUC := ucAppointment.NewCompleteWork(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	workloadSummaryUC := ucAppointment.NewWorkloadSummary(
		appointmentRepo,
		cfg.TechnicianMaxActive,
	)

	availableTechniciansUC := ucAppointment.NewAvailableTechnicians(
		appointmentRepo,
		cfg.TechnicianMaxActive,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	shopHandler := handlers.NewShopHandler(db)

	customerHandler := handlers.NewCustomerHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	partHandler := handlers.NewPartHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db, uploader)
	repairOrderHandler := handlers.NewRepairOrderHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		createAppointmentUC,
		listAppointmentsByDateUC,
		assignTechnicianUC,
		startWorkUC,
		completeWorkUC,
		cancelAppointmentUC,
	)

	technicianHandler := handlers.NewTechnicianHandler(
		workloadSummaryUC,
		availableTechniciansUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/shops", shopHandler.List)
			secured.GET("/shops/:id", shopHandler.Get)
			secured.PATCH("/shops/:id", middleware.RequireRoles(models.RoleOwner), shopHandler.Update)

			secured.GET("/customers", customerHandler.List)
			secured.GET("/customers/:id", customerHandler.Get)
			secured.POST("/customers", customerHandler.Create)
			secured.PATCH("/customers/:id", customerHandler.Update)

			secured.GET("/vehicles", vehicleHandler.List)
			secured.GET("/vehicles/:id", vehicleHandler.Get)
			secured.POST("/vehicles", vehicleHandler.Create)
			secured.GET("/vehicles/:id/problems", vehicleHandler.ListProblems)
			secured.POST("/vehicles/:id/problems", vehicleHandler.ReportProblem)
			secured.PATCH("/vehicles/:id/problems/:problem_id/resolve", vehicleHandler.ResolveProblem)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", middleware.RequireRoles(models.RoleOwner, models.RoleEmployee), serviceHandler.Create)
			secured.PATCH("/services/:id", middleware.RequireRoles(models.RoleOwner, models.RoleEmployee), serviceHandler.Update)

			secured.GET("/parts", partHandler.List)
			secured.POST("/parts", middleware.RequireRoles(models.RoleOwner, models.RoleEmployee), partHandler.Create)
			secured.PATCH("/parts/:id", middleware.RequireRoles(models.RoleOwner, models.RoleEmployee), partHandler.Update)

			employees := secured.Group("/employees")
			employees.Use(middleware.RequireRoles(models.RoleOwner))
			{
				employees.GET("", employeeHandler.List)
				employees.GET("/:id", employeeHandler.Get)
				employees.POST("", employeeHandler.Create)
				employees.PATCH("/:id", employeeHandler.Update)
				employees.POST("/:id/picture", employeeHandler.UploadPicture)
			}

			// ------------------------------
			// APPOINTMENTS + WORKFLOW
			// ------------------------------
			shopAPI := secured.Group("/shop")
			{
				shopAPI.POST("/appointments", appointmentHandler.Create)
				shopAPI.GET("/appointments", appointmentHandler.ListByDate)
				shopAPI.GET("/appointments/:id", appointmentHandler.Get)
				shopAPI.POST("/appointments/:id/assign-technician", appointmentHandler.AssignTechnician)
				shopAPI.POST("/appointments/:id/start-work", appointmentHandler.StartWork)
				shopAPI.POST("/appointments/:id/complete-work", appointmentHandler.CompleteWork)
				shopAPI.POST("/appointments/:id/cancel", appointmentHandler.Cancel)

				shopAPI.GET("/technicians/workload", technicianHandler.Workload)
				shopAPI.GET("/technicians/available", technicianHandler.Available)
			}

			secured.GET("/repair-orders", repairOrderHandler.List)
			secured.GET("/repair-orders/:id", repairOrderHandler.Get)
			secured.POST("/repair-orders", middleware.RequireRoles(models.RoleOwner, models.RoleEmployee), repairOrderHandler.Create)

			secured.GET("/audit-logs", middleware.RequireRoles(models.RoleOwner), auditLogsHandler.List)
		}
	}
}
