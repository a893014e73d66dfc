// File: /routes/routes.go
package routes

import (
	"net/http"

	"eventhub-api/config"
	"eventhub-api/controllers"
	"eventhub-api/middleware"
	"eventhub-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options carries the collaborators SetupRoutes wires into controllers
type Options struct {
	Config *config.Config
	Clock  controllers.Clock
	Policy services.ReminderPolicy
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, opts Options) {
	cfg := opts.Config

	// Services
	notificationService := services.NewNotificationService(db)
	authService := services.NewAuthService(db, cfg.JWTSecret)
	eventService := services.NewEventService(db, notificationService)
	registrationService := services.NewRegistrationService(db, notificationService)
	reminderService := services.NewReminderService(db, notificationService, opts.Policy)
	feedbackService := services.NewFeedbackService(db)
	reportService := services.NewReportService(db)

	// Controllers
	authController := controllers.NewAuthController(authService, opts.Clock)
	eventController := controllers.NewEventController(eventService, registrationService, opts.Clock)
	registrationController := controllers.NewRegistrationController(registrationService)
	notificationController := controllers.NewNotificationController(notificationService, reminderService, opts.Clock)
	feedbackController := controllers.NewFeedbackController(feedbackService)
	reportController := controllers.NewReportController(reportService)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "EventHub API",
			"status":  "healthy",
			"email":   cfg.EmailEnabled(),
			"broker":  cfg.BrokerEnabled(),
		})
	})

	// Identity routes (public)
	r.POST("/register", authController.Register)
	r.POST("/login", authController.Login)
	r.POST("/logout", authController.Logout)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.GET("/dashboard", notificationController.Dashboard)
		protected.GET("/events-json", eventController.GetEvents)
		protected.GET("/my-events-json", eventController.GetMyEvents)
		protected.GET("/notifications-json", notificationController.GetNotifications)
		protected.GET("/notifications/stats", notificationController.GetNotificationStats)
		protected.GET("/reports", reportController.GetReports)

		events := protected.Group("/events")
		{
			events.POST("/:id/book", middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst), eventController.BookEvent)
			events.GET("/:id/feedback", feedbackController.GetFeedbackForm)
			events.POST("/:id/feedback", feedbackController.SubmitFeedback)
		}

		// Staff routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireStaff())
		{
			admin.POST("/events", eventController.CreateEvent)
			admin.POST("/events/cancel", eventController.CancelEvents)
			admin.PUT("/events/:id", eventController.UpdateEvent)
			admin.DELETE("/events/:id", eventController.DeleteEvent)
			admin.GET("/events/:id/registrations", registrationController.GetEventRegistrations)
			admin.GET("/events/:id/feedback", feedbackController.GetEventFeedback)
			admin.PUT("/registrations/:id/attended", registrationController.MarkAttended)
			admin.PUT("/feedback/:id/reply", feedbackController.ReplyToFeedback)
		}
	}
}
