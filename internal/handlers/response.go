package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

// Envelope is the uniform response shape. Success carries data (plus meta
// for listings); failure carries only the error object.
type Envelope struct {
	Success bool        `json:"success"`
	Meta    interface{} `json:"meta,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details interface{}         `json:"details,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func respondList(c *gin.Context, meta, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Meta: meta, Data: data})
}

func respondError(c *gin.Context, status int, code apperrors.ErrorCode, message string) {
	c.JSON(status, Envelope{Success: false, Error: &ErrorBody{Code: code, Message: message}})
}

func abortError(c *gin.Context, status int, code apperrors.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: &ErrorBody{Code: code, Message: message}})
}
