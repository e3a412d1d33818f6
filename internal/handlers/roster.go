package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/services"
	"github.com/redcell/readiness-backend/internal/types"
)

type RosterHandler struct {
	log           *logger.Logger
	rosterService services.RosterService
}

func NewRosterHandler(log *logger.Logger, rosterService services.RosterService) *RosterHandler {
	handlerLog := log.With("handler", "RosterHandler")
	return &RosterHandler{log: handlerLog, rosterService: rosterService}
}

type createOperatorRequest struct {
	Name           string `json:"name" binding:"required"`
	OperatorHandle string `json:"operator_handle" binding:"required"`
	Email          string `json:"email"`
	TeamRole       string `json:"team_role"`
	OperatorLevel  string `json:"operator_level"`
	OnboardingDate string `json:"onboarding_date"`
	Password       string `json:"password"`
}

func (h *RosterHandler) Create(c *gin.Context) {
	var req createOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	operator := &types.Operator{
		Name:           req.Name,
		OperatorHandle: req.OperatorHandle,
		Email:          req.Email,
		TeamRole:       req.TeamRole,
		OperatorLevel:  req.OperatorLevel,
		Active:         true,
	}
	if req.OnboardingDate != "" {
		onboarded, err := time.Parse("2006-01-02", req.OnboardingDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_onboarding_date", err)
			return
		}
		operator.OnboardingDate = &onboarded
	}

	created, err := h.rosterService.CreateOperator(c.Request.Context(), operator, req.Password)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RosterHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	operators, err := h.rosterService.ListOperators(c.Request.Context(), activeOnly)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, operators)
}

func (h *RosterHandler) Get(c *gin.Context) {
	operatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	operator, err := h.rosterService.GetOperator(c.Request.Context(), operatorID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondOK(c, operator)
}

func (h *RosterHandler) Update(c *gin.Context) {
	operatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	operator, err := h.rosterService.GetOperator(c.Request.Context(), operatorID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	if err := c.ShouldBindJSON(operator); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	operator.ID = operatorID

	updated, err := h.rosterService.UpdateOperator(c.Request.Context(), operator)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "update_failed", err)
		return
	}
	RespondOK(c, updated)
}

func (h *RosterHandler) SetAvatar(c *gin.Context) {
	operatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	operator, err := h.rosterService.SetOperatorAvatar(c.Request.Context(), operatorID, raw)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "avatar_failed", err)
		return
	}
	RespondOK(c, operator)
}

func (h *RosterHandler) Deactivate(c *gin.Context) {
	operatorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.rosterService.DeactivateOperator(c.Request.Context(), operatorID); err != nil {
		RespondError(c, http.StatusInternalServerError, "deactivate_failed", err)
		return
	}
	RespondOK(c, gin.H{"status": "deactivated"})
}
