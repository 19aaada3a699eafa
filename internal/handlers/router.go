package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driveeasy/booking-service/internal/auth"
	"github.com/driveeasy/booking-service/internal/models"
	"github.com/driveeasy/booking-service/internal/services"
	"github.com/driveeasy/booking-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	bookingHandler      *BookingHandler
	notificationHandler *NotificationHandler
	instructorHandler   *InstructorHandler
	userHandler         *UserHandler
	authMiddleware      *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *auth.Manager,
	logger utils.Logger,
	secureCookies bool,
) *HandlerManager {
	authMiddleware := NewSessionAuthMiddleware(sessions, secureCookies)

	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), sessions, authMiddleware, logger),
		bookingHandler:      NewBookingHandler(serviceManager.Booking(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		instructorHandler:   NewInstructorHandler(serviceManager.Instructor(), logger),
		userHandler:         NewUserHandler(serviceManager.Auth(), serviceManager.Stats(), logger),
		authMiddleware:      authMiddleware,
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Authentication
	router.POST("/register", hm.authHandler.Register)
	router.POST("/login", hm.authHandler.Login)
	router.POST("/logout", hm.authHandler.Logout)
	router.GET("/check-session", hm.authHandler.CheckSession)

	// Instructor directory (public)
	router.GET("/instructors", hm.instructorHandler.List)
	router.GET("/instructors/:id", hm.instructorHandler.Get)

	// Authenticated routes
	authed := router.Group("")
	authed.Use(hm.authMiddleware.RequireAuth())
	{
		authed.POST("/bookings", hm.bookingHandler.Create)
		authed.GET("/my-bookings", hm.bookingHandler.ListMine)

		authed.GET("/notifications", hm.notificationHandler.List)
		authed.PUT("/notifications/:id/read", hm.notificationHandler.MarkRead)
		authed.PUT("/notifications/read-all", hm.notificationHandler.MarkAllRead)

		authed.GET("/stats", hm.userHandler.Stats)

		// Instructor schedule
		authed.GET("/instructor/bookings",
			hm.authMiddleware.RequireRole(models.RoleInstructor),
			hm.bookingHandler.ListForInstructor)

		// Admin routes
		admin := authed.Group("")
		admin.Use(hm.authMiddleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/admin/bookings", hm.bookingHandler.ListAll)
			admin.PUT("/admin/bookings/:id", hm.bookingHandler.UpdateStatus)
			admin.GET("/admin/bookings/export", hm.bookingHandler.ExportReport)
			admin.GET("/users", hm.userHandler.ListUsers)
		}
	}

	// API index
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "DriveEasy Booking API",
			"status":    "active",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "booking-service",
		})
	})
}
