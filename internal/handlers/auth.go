package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/middleware"
	"github.com/redcell/readiness-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	handlerLog := log.With("handler", "AuthHandler")
	return &AuthHandler{log: handlerLog, authService: authService}
}

type loginRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	token, operator, err := h.authService.Login(c.Request.Context(), req.Handle, req.Password)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}

	RespondOK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(h.authService.GetAccessTTL() / time.Second),
		"operator":     operator,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	operator := middleware.OperatorFromContext(c)
	if operator == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	RespondOK(c, operator)
}
