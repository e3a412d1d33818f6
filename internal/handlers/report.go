package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/services"
)

type ReportHandler struct {
	log           *logger.Logger
	reportService services.ReportService
}

func NewReportHandler(log *logger.Logger, reportService services.ReportService) *ReportHandler {
	handlerLog := log.With("handler", "ReportHandler")
	return &ReportHandler{log: handlerLog, reportService: reportService}
}

func (h *ReportHandler) Annual(c *gin.Context) {
	report, err := h.reportService.AnnualReport(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "report_failed", err)
		return
	}
	RespondOK(c, report)
}

func (h *ReportHandler) Quarterly(c *gin.Context) {
	report, err := h.reportService.QuarterlyReport(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "report_failed", err)
		return
	}
	RespondOK(c, report)
}
