package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/utils"
)

type SocialHandler struct {
	BaseHandler
	socialService services.SocialService
}

func NewSocialHandler(socialService services.SocialService, logger utils.Logger) *SocialHandler {
	return &SocialHandler{
		BaseHandler:   NewBaseHandler(logger),
		socialService: socialService,
	}
}

// Follow makes the caller follow the target user
func (h *SocialHandler) Follow(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.socialService.Follow(c.Request.Context(), user, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successJSON("Now following", nil))
}

// Unfollow removes the caller's follow of the target user
func (h *SocialHandler) Unfollow(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.socialService.Unfollow(c.Request.Context(), user, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successJSON("Unfollowed", nil))
}

// IsFollowing reports whether the caller follows the target user
func (h *SocialHandler) IsFollowing(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	following, err := h.socialService.IsFollowing(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_following": following})
}

// Following lists the users a user follows
func (h *SocialHandler) Following(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	users, err := h.socialService.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Followers lists the users following a user
func (h *SocialHandler) Followers(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	users, err := h.socialService.Followers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
