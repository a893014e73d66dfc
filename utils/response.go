// File: /utils/response.go
package utils

import (
	"log"
	"net/http"

	"eventhub-api/services"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request: Error is the
// human-readable summary, Message optional detail, and Kind the handled error
// kind clients can switch on.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Code    int    `json:"code"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

func SendValidationError(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Message: err,
		Kind:    services.KindValidation.String(),
		Code:    http.StatusBadRequest,
	})
}

// StatusFor maps a handled error kind to its HTTP status
func StatusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindPermissionDenied:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindRuleViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// SendAppError reports err to the client. Handled errors keep their message;
// anything else is logged and answered with a generic 500.
func SendAppError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	if kind == 0 {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		SendError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := StatusFor(kind)
	c.JSON(status, ErrorResponse{
		Error: err.Error(),
		Kind:  kind.String(),
		Code:  status,
	})
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusOK, response)
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{
		Message: message,
		Data:    data,
	}
	c.JSON(http.StatusCreated, response)
}
