package routes

import (
	"clinic-management-server/internal/config"
	"clinic-management-server/internal/handlers"
	"clinic-management-server/internal/middleware"
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, notifier *notify.Notifier) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, notifier)
	templateHandler := handlers.NewTemplateHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db, notifier)
	reportHandler := handlers.NewReportHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Staff account management (admin only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.DELETE("/:id", userHandler.DeleteUser)
		}

		// Doctor roster: readable by all staff, editable by admins
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)

			adminDoctorRoutes := doctorRoutes.Group("")
			adminDoctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminDoctorRoutes.POST("", doctorHandler.CreateDoctor)
				adminDoctorRoutes.PUT("/:id", doctorHandler.UpdateDoctor)
			}
		}

		// Appointment booking and lifecycle (all staff)
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.POST("/:id/remind", appointmentHandler.SendReminder)
		}

		// SMS template administration
		templateRoutes := private.Group("/sms-templates")
		{
			templateRoutes.GET("", templateHandler.GetTemplates)
			templateRoutes.PUT("/:type", middleware.RoleAuthMiddleware(models.RoleAdmin), templateHandler.UpsertTemplate)
		}

		// Bulk notifications (all staff)
		private.POST("/notifications/bulk", notificationHandler.SendBulkSMS)

		// Exports (admin only)
		private.GET("/reports/phone-list.csv", middleware.RoleAuthMiddleware(models.RoleAdmin), reportHandler.DownloadPhoneList)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
