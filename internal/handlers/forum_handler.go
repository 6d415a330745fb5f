package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/utils"
	"github.com/scolink/community-service/internal/validator"
)

type ForumHandler struct {
	BaseHandler
	forumService services.ForumService
}

func NewForumHandler(forumService services.ForumService, logger utils.Logger) *ForumHandler {
	return &ForumHandler{
		BaseHandler:  NewBaseHandler(logger),
		forumService: forumService,
	}
}

// ListTopics returns topics visible to the caller
func (h *ForumHandler) ListTopics(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	filters := repositories.TopicFilters{}
	if raw := c.Query("branch_id"); raw != "" {
		filters.BranchID = &raw
	}
	if raw := c.Query("level_id"); raw != "" {
		filters.LevelID = &raw
	}
	if raw := c.Query("subject_id"); raw != "" {
		filters.SubjectID = &raw
	}
	if raw := c.Query("author_id"); raw != "" {
		filters.AuthorID = &raw
	}
	filters.Limit = intQuery(c, "limit", 50)
	filters.Offset = intQuery(c, "offset", 0)

	topics, err := h.forumService.ListTopics(c.Request.Context(), user, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topics)
}

// CreateTopic opens a new discussion thread
func (h *ForumHandler) CreateTopic(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.TopicCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	topic, err := h.forumService.CreateTopic(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, topic)
}

// GetTopic returns one topic with its replies
func (h *ForumHandler) GetTopic(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	detail, err := h.forumService.GetTopic(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// DeleteTopic removes a topic
func (h *ForumHandler) DeleteTopic(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.forumService.DeleteTopic(c.Request.Context(), user, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successJSON("Topic deleted", nil))
}

// CreatePost replies to a topic
func (h *ForumHandler) CreatePost(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	post, err := h.forumService.CreatePost(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
