package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/services"
	"github.com/tutorlane/marketplace-service/internal/utils"
)

// StudentHandler serves the student-facing endpoints. Identity comes from
// the auth middleware; every operation is keyed by the caller's user id.
type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
	}
}

// GetProfile handles GET /student/me
func (h *StudentHandler) GetProfile(c *gin.Context) {
	student, err := h.service.GetProfile(c.Request.Context(), userID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, student)
}

// UpsertProfile handles PUT /student/me
func (h *StudentHandler) UpsertProfile(c *gin.Context) {
	var req services.StudentProfileUpsertRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.service.UpsertProfile(c.Request.Context(), userID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, student)
}

// PatchProfile handles PATCH /student/me
func (h *StudentHandler) PatchProfile(c *gin.Context) {
	var req services.StudentProfilePatchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.service.PatchProfile(c.Request.Context(), userID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, student)
}

// CreateBooking handles POST /student/bookings
func (h *StudentHandler) CreateBooking(c *gin.Context) {
	var req services.BookingCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), userID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondCreated(c, booking)
}

// ListBookings handles GET /student/bookings
func (h *StudentHandler) ListBookings(c *gin.Context) {
	query := services.BookingListQuery{}
	query.Page, query.Limit = h.pageParams(c)
	if raw := c.Query("status"); raw != "" {
		status := models.BookingStatus(raw)
		query.Status = &status
	}

	result, err := h.service.ListBookings(c.Request.Context(), userID(c), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, result.Meta, result.Bookings)
}

// GetBooking handles GET /student/bookings/:id
func (h *StudentHandler) GetBooking(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), userID(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, booking)
}

// CancelBooking handles PATCH /student/bookings/:id/cancel
func (h *StudentHandler) CancelBooking(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(c.Request.Context(), userID(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, booking)
}

// CreateReview handles POST /student/reviews
func (h *StudentHandler) CreateReview(c *gin.Context) {
	var req services.ReviewCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), userID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondCreated(c, review)
}

// ListReviews handles GET /student/reviews
func (h *StudentHandler) ListReviews(c *gin.Context) {
	reviews, err := h.service.ListReviews(c.Request.Context(), userID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondOK(c, reviews)
}
