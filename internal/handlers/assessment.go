package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/middleware"
	"github.com/redcell/readiness-backend/internal/services"
)

type AssessmentHandler struct {
	log               *logger.Logger
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(log *logger.Logger, assessmentService services.AssessmentService) *AssessmentHandler {
	handlerLog := log.With("handler", "AssessmentHandler")
	return &AssessmentHandler{log: handlerLog, assessmentService: assessmentService}
}

type createInlineRequest struct {
	Title       string                    `json:"title" binding:"required"`
	Description string                    `json:"description"`
	Questions   []services.InlineQuestion `json:"questions"`
}

func (h *AssessmentHandler) Create(c *gin.Context) {
	var req createInlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var createdBy *uuid.UUID
	if operator := middleware.OperatorFromContext(c); operator != nil {
		createdBy = &operator.ID
	}

	assessment, err := h.assessmentService.Create(c.Request.Context(), req.Title, req.Description, createdBy, req.Questions)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, assessment)
}

type createAssessmentRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	// Base64-encoded CSV so the payload survives JSON transport regardless
	// of the file's original encoding.
	CSVContent string `json:"csv_content" binding:"required"`
}

func (h *AssessmentHandler) CreateFromCSV(c *gin.Context) {
	var req createAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	raw, err := base64.StdEncoding.DecodeString(req.CSVContent)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_csv_encoding", err)
		return
	}

	var createdBy *uuid.UUID
	if operator := middleware.OperatorFromContext(c); operator != nil {
		createdBy = &operator.ID
	}

	summary, err := h.assessmentService.CreateFromCSV(c.Request.Context(), req.Title, req.Description, createdBy, raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "import_failed", err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

type importQuestionsRequest struct {
	CSVContent string `json:"csv_content" binding:"required"`
}

func (h *AssessmentHandler) ImportQuestions(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req importQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	raw, err := base64.StdEncoding.DecodeString(req.CSVContent)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_csv_encoding", err)
		return
	}

	summary, err := h.assessmentService.ImportQuestionsFromCSV(c.Request.Context(), assessmentID, raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "import_failed", err)
		return
	}
	RespondOK(c, summary)
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	assessment, err := h.assessmentService.GetAssessment(c.Request.Context(), assessmentID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondOK(c, assessment)
}

func (h *AssessmentHandler) List(c *gin.Context) {
	assessments, err := h.assessmentService.ListAssessments(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, assessments)
}

func (h *AssessmentHandler) Delete(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.assessmentService.DeleteAssessment(c.Request.Context(), assessmentID); err != nil {
		RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"status": "deleted"})
}
