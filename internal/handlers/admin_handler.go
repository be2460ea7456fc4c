package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/services"
	"github.com/tutorlane/marketplace-service/internal/utils"
	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

// AdminHandler serves user administration, moderation, taxonomy and
// analytics endpoints.
type AdminHandler struct {
	BaseHandler
	service   services.AdminService
	analytics services.AnalyticsService
}

func NewAdminHandler(service services.AdminService, analytics services.AnalyticsService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
		analytics:   analytics,
	}
}

// ===== USERS =====

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := services.UserListQuery{}
	query.Page, query.Limit = h.pageParams(c)
	if search := c.Query("search"); search != "" {
		query.Search = &search
	}
	if raw := c.Query("role"); raw != "" {
		role := models.UserRole(raw)
		query.Role = &role
	}
	if raw := c.Query("status"); raw != "" {
		status := models.UserStatus(raw)
		query.Status = &status
	}

	result, err := h.service.ListUsers(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, result.Meta, result.Users)
}

// GetUser handles GET /admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, user)
}

// UpdateUserRole handles PATCH /admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req services.UserRoleUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateUserRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, user)
}

// UpdateUserStatus handles PATCH /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	var req services.UserStatusUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateUserStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, user)
}

// SuspendUser handles PATCH /admin/users/:id/suspend
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	user, err := h.service.SuspendUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, user)
}

// ActivateUser handles PATCH /admin/users/:id/activate
func (h *AdminHandler) ActivateUser(c *gin.Context) {
	user, err := h.service.ActivateUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, user)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// ===== CATEGORIES =====

// CreateCategory handles POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondCreated(c, category)
}

// UpdateCategory handles PATCH /admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	var req services.CategoryUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, category)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// ===== BOOKINGS & REVIEWS =====

// ListBookings handles GET /admin/bookings
func (h *AdminHandler) ListBookings(c *gin.Context) {
	query := services.BookingListQuery{}
	query.Page, query.Limit = h.pageParams(c)
	if raw := c.Query("status"); raw != "" {
		status := models.BookingStatus(raw)
		query.Status = &status
	}

	result, err := h.service.ListBookings(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, result.Meta, result.Bookings)
}

// ListReviews handles GET /admin/reviews
func (h *AdminHandler) ListReviews(c *gin.Context) {
	query := services.ReviewListQuery{}
	query.Page, query.Limit = h.pageParams(c)
	if raw := c.Query("tutor_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			tutorID := uint(id)
			query.TutorID = &tutorID
		}
	}
	if raw := c.Query("rating_min"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			query.RatingMin = &v
		}
	}
	if raw := c.Query("rating_max"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			query.RatingMax = &v
		}
	}

	result, err := h.service.ListReviews(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, result.Meta, result.Reviews)
}

// DeleteReview handles DELETE /admin/reviews/:id
func (h *AdminHandler) DeleteReview(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// ===== TUTOR MODERATION =====

// SetTutorFeatured handles PATCH /admin/tutors/:id/featured
func (h *AdminHandler) SetTutorFeatured(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	var req services.FeaturedUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tutor, err := h.service.SetTutorFeatured(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, tutor)
}

// SetTutorAvailability handles PATCH /admin/tutors/:id/availability
func (h *AdminHandler) SetTutorAvailability(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	var req services.AvailabilityUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tutor, err := h.service.SetTutorAvailability(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, tutor)
}

// ===== ANALYTICS =====

// GetAnalytics handles GET /admin/analytics
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	query, ok := h.analyticsQuery(c)
	if !ok {
		return
	}

	analytics, err := h.analytics.GetAnalytics(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, analytics)
}

// ExportAnalytics handles GET /admin/analytics/export
func (h *AdminHandler) ExportAnalytics(c *gin.Context) {
	query, ok := h.analyticsQuery(c)
	if !ok {
		return
	}

	workbook, err := h.analytics.ExportAnalytics(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := "analytics-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

func (h *AdminHandler) analyticsQuery(c *gin.Context) (services.AnalyticsQuery, bool) {
	query := services.AnalyticsQuery{}

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			respondError(c, http.StatusBadRequest, apperrors.CodeBadRequest, "Invalid from parameter")
			return query, false
		}
		query.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			respondError(c, http.StatusBadRequest, apperrors.CodeBadRequest, "Invalid to parameter")
			return query, false
		}
		query.To = &t
	}
	if raw := c.Query("top_n"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			query.TopN = v
		}
	}

	return query, true
}
