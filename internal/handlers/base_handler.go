package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tutorlane/marketplace-service/internal/utils"
	"github.com/tutorlane/marketplace-service/internal/validator"
	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

// handleServiceError maps a service error onto the response envelope.
// AppErrors map 1:1; validation errors become a 400 with field details;
// anything else is a logged 500 with a generic message.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		body := &ErrorBody{Code: appErr.Code, Message: appErr.Message}
		var fieldErrs validator.ValidationErrors
		if errors.As(appErr.Unwrap(), &fieldErrs) {
			body.Details = fieldErrs
		}
		c.JSON(appErr.HTTPCode, Envelope{Success: false, Error: body})
		return
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: &ErrorBody{
			Code:    apperrors.CodeValidationFailed,
			Message: "Validation failed",
			Details: fieldErrs,
		}})
		return
	}

	utils.FromContext(c.Request.Context(), h.logger).Error("unhandled service error",
		"error", err, "path", c.FullPath())
	respondError(c, http.StatusInternalServerError, apperrors.CodeInternalError, "Internal server error")
}

// bindJSON decodes the body, translating malformed JSON into a 400.
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondError(c, http.StatusBadRequest, apperrors.CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// idParam parses a numeric path parameter.
func (h *BaseHandler) idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, apperrors.CodeBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// pageParams reads the common page/limit query values; normalization happens
// in the service layer.
func (h *BaseHandler) pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	return page, limit
}
