package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/utils"
	"github.com/scolink/community-service/internal/validator"
)

type TaxonomyHandler struct {
	BaseHandler
	taxonomyService services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService services.TaxonomyService, logger utils.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		BaseHandler:     NewBaseHandler(logger),
		taxonomyService: taxonomyService,
	}
}

// ListBranches returns the active branch catalog
func (h *TaxonomyHandler) ListBranches(c *gin.Context) {
	branches, err := h.taxonomyService.ListBranches(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

// CreateBranch adds a branch to the catalog
func (h *TaxonomyHandler) CreateBranch(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.BranchCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	branch, err := h.taxonomyService.CreateBranch(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// ListLevels returns levels, optionally for one branch
func (h *TaxonomyHandler) ListLevels(c *gin.Context) {
	var branchID *string
	if raw := c.Query("branch_id"); raw != "" {
		branchID = &raw
	}

	levels, err := h.taxonomyService.ListLevels(c.Request.Context(), branchID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

// CreateLevel adds a level to a branch
func (h *TaxonomyHandler) CreateLevel(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.LevelCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	level, err := h.taxonomyService.CreateLevel(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, level)
}

// ListSubjects returns subjects, optionally scoped by branch and level
func (h *TaxonomyHandler) ListSubjects(c *gin.Context) {
	var branchID, levelID *string
	if raw := c.Query("branch_id"); raw != "" {
		branchID = &raw
	}
	if raw := c.Query("level_id"); raw != "" {
		levelID = &raw
	}

	subjects, err := h.taxonomyService.ListSubjects(c.Request.Context(), branchID, levelID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// CreateSubject adds a subject
func (h *TaxonomyHandler) CreateSubject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.SubjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	subject, err := h.taxonomyService.CreateSubject(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

// AssignSubject links the calling teacher to a subject
func (h *TaxonomyHandler) AssignSubject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.TeacherSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	if err := h.taxonomyService.AssignSubject(c.Request.Context(), user, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successJSON("Subject assigned", nil))
}

// RemoveSubject unlinks the calling teacher from a subject
func (h *TaxonomyHandler) RemoveSubject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	subjectID := c.Param("id")
	if err := h.taxonomyService.RemoveSubject(c.Request.Context(), user, subjectID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successJSON("Subject removed", nil))
}

// ListMySubjects returns the subjects the calling teacher teaches
func (h *TaxonomyHandler) ListMySubjects(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	subjects, err := h.taxonomyService.ListMySubjects(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}
