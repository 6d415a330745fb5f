package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/utils"
	"github.com/scolink/community-service/internal/validator"
)

type BannerHandler struct {
	BaseHandler
	bannerService services.BannerService
}

func NewBannerHandler(bannerService services.BannerService, logger utils.Logger) *BannerHandler {
	return &BannerHandler{
		BaseHandler:   NewBaseHandler(logger),
		bannerService: bannerService,
	}
}

// ListActive returns the banners currently served to visitors
func (h *BannerHandler) ListActive(c *gin.Context) {
	banners, err := h.bannerService.ListActive(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, banners)
}

// ListAll returns every banner, active or not
func (h *BannerHandler) ListAll(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	banners, err := h.bannerService.ListAll(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, banners)
}

// Create registers a new banner
func (h *BannerHandler) Create(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.BannerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	banner, err := h.bannerService.Create(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, banner)
}

// Update modifies a banner
func (h *BannerHandler) Update(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.BannerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	banner, err := h.bannerService.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, banner)
}

// Delete removes a banner
func (h *BannerHandler) Delete(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.bannerService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successJSON("Banner deleted", nil))
}
