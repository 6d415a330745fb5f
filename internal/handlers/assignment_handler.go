package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/repositories"
	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/utils"
	"github.com/scolink/community-service/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
	exportService     services.ExportService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, exportService services.ExportService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
		exportService:     exportService,
	}
}

// Create publishes a new assignment
func (h *AssignmentHandler) Create(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.AssignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// List returns assignments matching the query filters
func (h *AssignmentHandler) List(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	filters := repositories.AssignmentFilters{}
	if raw := c.Query("branch_id"); raw != "" {
		filters.BranchID = &raw
	}
	if raw := c.Query("level_id"); raw != "" {
		filters.LevelID = &raw
	}
	if raw := c.Query("subject_id"); raw != "" {
		filters.SubjectID = &raw
	}
	if raw := c.Query("teacher_id"); raw != "" {
		filters.TeacherID = &raw
	}
	filters.Limit = intQuery(c, "limit", 50)
	filters.Offset = intQuery(c, "offset", 0)

	assignments, err := h.assignmentService.List(c.Request.Context(), user, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// Get returns one assignment with its questions
func (h *AssignmentHandler) Get(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	detail, err := h.assignmentService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// AddQuestion appends a question to an existing assignment
func (h *AssignmentHandler) AddQuestion(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	question, err := h.assignmentService.AddQuestion(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// ListQuestions returns the questions of one assignment
func (h *AssignmentHandler) ListQuestions(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	questions, err := h.assignmentService.ListQuestions(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// Delete removes an assignment
func (h *AssignmentHandler) Delete(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successJSON("Assignment deleted", nil))
}

// SubmitAnswers grades and records a student submission
func (h *AssignmentHandler) SubmitAnswers(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req validator.AnswersSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Invalid request payload", err.Error()))
		return
	}

	result, err := h.assignmentService.SubmitAnswers(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// MyResults returns the caller's own graded submission
func (h *AssignmentHandler) MyResults(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	result, err := h.assignmentService.MyResults(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Results returns the per-student results for the assignment owner
func (h *AssignmentHandler) Results(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	results, err := h.assignmentService.Results(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ExportResults streams the results as an xlsx download
func (h *AssignmentHandler) ExportResults(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	content, filename, err := h.exportService.AssignmentResults(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}
