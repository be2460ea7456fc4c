package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
	"github.com/tutorlane/marketplace-service/internal/services"
	"github.com/tutorlane/marketplace-service/internal/utils"
	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

type HandlerManager struct {
	catalogHandler *CatalogHandler
	studentHandler *StudentHandler
	tutorHandler   *TutorHandler
	adminHandler   *AdminHandler
	authMiddleware *CasdoorAuthMiddleware
	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	identity repositories.IdentityRepository,
) *HandlerManager {
	return &HandlerManager{
		catalogHandler: NewCatalogHandler(serviceManager.Catalog(), logger),
		studentHandler: NewStudentHandler(serviceManager.Student(), logger),
		tutorHandler:   NewTutorHandler(serviceManager.Tutor(), serviceManager.Catalog(), logger),
		adminHandler:   NewAdminHandler(serviceManager.Admin(), serviceManager.Analytics(), logger),
		authMiddleware: NewCasdoorAuthMiddleware(identity, logger),
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")
	{
		// Catalog routes - no authentication required
		v1.GET("/tutors", hm.catalogHandler.BrowseTutors)
		v1.GET("/tutors/:id", hm.catalogHandler.GetTutor)
		v1.GET("/categories", hm.catalogHandler.ListCategories)

		// Student routes
		student := v1.Group("/student")
		student.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
		{
			student.GET("/me", hm.studentHandler.GetProfile)
			student.PUT("/me", hm.studentHandler.UpsertProfile)
			student.PATCH("/me", hm.studentHandler.PatchProfile)

			student.POST("/bookings", hm.studentHandler.CreateBooking)
			student.GET("/bookings", hm.studentHandler.ListBookings)
			student.GET("/bookings/:id", hm.studentHandler.GetBooking)
			student.PATCH("/bookings/:id/cancel", hm.studentHandler.CancelBooking)

			student.POST("/reviews", hm.studentHandler.CreateReview)
			student.GET("/reviews", hm.studentHandler.ListReviews)
		}

		// Tutor routes
		tutor := v1.Group("/tutor")
		tutor.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleTutor))
		{
			tutor.GET("/me", hm.tutorHandler.GetProfile)
			tutor.PUT("/me", hm.tutorHandler.UpsertProfile)
			tutor.PATCH("/me", hm.tutorHandler.PatchProfile)
			tutor.PUT("/availability", hm.tutorHandler.UpdateAvailability)

			tutor.GET("/sessions", hm.tutorHandler.ListSessions)
			tutor.GET("/sessions/:id", hm.tutorHandler.GetSession)
			tutor.PATCH("/sessions/:id/complete", hm.tutorHandler.CompleteSession)

			tutor.GET("/reviews", hm.tutorHandler.ListReviews)
			tutor.GET("/dashboard", hm.tutorHandler.GetDashboard)
			tutor.GET("/categories", hm.tutorHandler.ListCategories)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.GET("/users", hm.adminHandler.ListUsers)
			admin.GET("/users/:id", hm.adminHandler.GetUser)
			admin.PATCH("/users/:id/role", hm.adminHandler.UpdateUserRole)
			admin.PATCH("/users/:id/status", hm.adminHandler.UpdateUserStatus)
			admin.PATCH("/users/:id/suspend", hm.adminHandler.SuspendUser)
			admin.PATCH("/users/:id/activate", hm.adminHandler.ActivateUser)
			admin.DELETE("/users/:id", hm.adminHandler.DeleteUser)

			admin.GET("/analytics", hm.adminHandler.GetAnalytics)
			admin.GET("/analytics/export", hm.adminHandler.ExportAnalytics)

			admin.GET("/bookings", hm.adminHandler.ListBookings)
			admin.GET("/reviews", hm.adminHandler.ListReviews)
			admin.DELETE("/reviews/:id", hm.adminHandler.DeleteReview)

			admin.PATCH("/tutors/:id/featured", hm.adminHandler.SetTutorFeatured)
			admin.PATCH("/tutors/:id/availability", hm.adminHandler.SetTutorAvailability)

			admin.POST("/categories", hm.adminHandler.CreateCategory)
			admin.PATCH("/categories/:id", hm.adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", hm.adminHandler.DeleteCategory)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, apperrors.CodeNotFound, "Route not found")
	})
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.Health(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, apperrors.CodeInternalError, "Service unhealthy")
		return
	}
	respondOK(c, gin.H{"status": "ok"})
}
