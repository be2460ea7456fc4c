package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/services"
	"github.com/tutorlane/marketplace-service/internal/utils"
)

// TutorHandler serves the tutor-facing endpoints.
type TutorHandler struct {
	BaseHandler
	service services.TutorService
	catalog services.CatalogService
}

func NewTutorHandler(service services.TutorService, catalog services.CatalogService, logger utils.Logger) *TutorHandler {
	return &TutorHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
		catalog:     catalog,
	}
}

// GetProfile handles GET /tutor/me
func (h *TutorHandler) GetProfile(c *gin.Context) {
	tutor, err := h.service.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, tutor)
}

// UpsertProfile handles PUT /tutor/me
func (h *TutorHandler) UpsertProfile(c *gin.Context) {
	var req services.TutorProfileUpsertRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tutor, err := h.service.UpsertProfile(c.Request.Context(), userID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, tutor)
}

// PatchProfile handles PATCH /tutor/me
func (h *TutorHandler) PatchProfile(c *gin.Context) {
	var req services.TutorProfilePatchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tutor, err := h.service.PatchProfile(c.Request.Context(), userID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, tutor)
}

// UpdateAvailability handles PUT /tutor/availability
func (h *TutorHandler) UpdateAvailability(c *gin.Context) {
	var req services.AvailabilityUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tutor, err := h.service.UpdateAvailability(c.Request.Context(), userID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, tutor)
}

// ListSessions handles GET /tutor/sessions
func (h *TutorHandler) ListSessions(c *gin.Context) {
	query := services.BookingListQuery{}
	query.Page, query.Limit = h.pageParams(c)
	if raw := c.Query("status"); raw != "" {
		status := models.BookingStatus(raw)
		query.Status = &status
	}

	result, err := h.service.ListSessions(c.Request.Context(), userID(c), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, result.Meta, result.Bookings)
}

// GetSession handles GET /tutor/sessions/:id
func (h *TutorHandler) GetSession(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetSession(c.Request.Context(), userID(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, booking)
}

// CompleteSession handles PATCH /tutor/sessions/:id/complete
func (h *TutorHandler) CompleteSession(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.CompleteSession(c.Request.Context(), userID(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, booking)
}

// ListReviews handles GET /tutor/reviews
func (h *TutorHandler) ListReviews(c *gin.Context) {
	reviews, err := h.service.ListReviews(c.Request.Context(), userID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, reviews)
}

// GetDashboard handles GET /tutor/dashboard
func (h *TutorHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.GetDashboard(c.Request.Context(), userID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, dashboard)
}

// ListCategories handles GET /tutor/categories
func (h *TutorHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, categories)
}
