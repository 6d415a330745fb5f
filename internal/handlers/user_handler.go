package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/models"
	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/utils"
	"github.com/scolink/community-service/internal/validator"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// GetProfile returns a user's public profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the caller's own profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Search finds users by name, optionally narrowed by role
func (h *UserHandler) Search(c *gin.Context) {
	query := c.Query("q")

	var role *models.UserRole
	if raw := c.Query("role"); raw != "" {
		if !models.IsValidRole(raw) {
			c.JSON(http.StatusBadRequest, errorJSON("bad_request", "unknown role filter", raw))
			return
		}
		r := models.UserRole(raw)
		role = &r
	}

	h.LogRequest(c, "Searching users", "query", query)

	users, err := h.userService.Search(c.Request.Context(), query, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListPendingTeachers returns teacher accounts waiting for validation
func (h *UserHandler) ListPendingTeachers(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	pending, err := h.userService.ListPendingTeachers(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pending)
}

// ValidateTeacher marks a teacher account as validated
func (h *UserHandler) ValidateTeacher(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	teacherID := c.Param("id")
	if err := h.userService.ValidateTeacher(c.Request.Context(), user, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successJSON("Teacher validated", nil))
}
