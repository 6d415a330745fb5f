package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/utils"
	"github.com/scolink/community-service/internal/validator"
)

type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.LoggerFromContext(c.Request.Context(), h.logger).Error(msg, append(args, "error", err)...)
}

func errorJSON(code, message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func successJSON(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// currentUser reads the authenticated user placed in the context by the
// auth middleware. Missing means an unauthenticated route got here.
func (h *BaseHandler) currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "authentication required", nil))
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "invalid authentication context", nil))
		return nil, false
	}
	return user, true
}

// handleServiceError maps service errors onto HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, errorJSON("validation_failed", "Validation failed", validationErrors))
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, errorJSON("business_rule", businessRuleError.Message, map[string]interface{}{
			"rule": businessRuleError.Rule,
		}))
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, errorJSON("forbidden", "Access denied", map[string]interface{}{
			"action":   permissionError.Action,
			"resource": permissionError.Resource,
		}))
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorJSON("unauthorized", "Invalid email or password", nil))
	case errors.Is(err, services.ErrTeacherNotValid):
		c.JSON(http.StatusForbidden, errorJSON("forbidden", "Teacher account pending validation", nil))
	case services.IsConflictError(err):
		c.JSON(http.StatusConflict, errorJSON("conflict", err.Error(), nil))
	case services.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, errorJSON("not_found", err.Error(), nil))
	default:
		h.LogError(c, err, "Unhandled service error", "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, errorJSON("internal_error", "Internal server error", nil))
	}
}
