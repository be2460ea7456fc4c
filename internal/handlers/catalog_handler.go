package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/services"
	"github.com/tutorlane/marketplace-service/internal/utils"
)

// CatalogHandler serves the public browse endpoints.
type CatalogHandler struct {
	BaseHandler
	service services.CatalogService
}

func NewCatalogHandler(service services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     service,
	}
}

// BrowseTutors handles GET /tutors
func (h *CatalogHandler) BrowseTutors(c *gin.Context) {
	query := services.TutorBrowseQuery{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	query.Page, query.Limit = h.pageParams(c)

	if search := c.Query("search"); search != "" {
		query.Search = &search
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			query.CategoryID = &categoryID
		}
	}
	if raw := c.Query("group"); raw != "" {
		group := models.AcademicGroup(raw)
		query.Group = &group
	}
	if raw := c.Query("price_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			query.PriceMin = &v
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			query.PriceMax = &v
		}
	}
	if raw := c.Query("available"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			query.Available = &v
		}
	}
	if raw := c.Query("featured"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			query.Featured = &v
		}
	}

	result, err := h.service.BrowseTutors(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondList(c, result.Meta, result.Tutors)
}

// GetTutor handles GET /tutors/:id
func (h *CatalogHandler) GetTutor(c *gin.Context) {
	id, ok := h.idParam(c, "id")
	if !ok {
		return
	}

	tutor, err := h.service.GetTutor(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondOK(c, tutor)
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	respondOK(c, categories)
}
