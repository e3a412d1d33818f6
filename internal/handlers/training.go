package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/services"
)

type TrainingHandler struct {
	log             *logger.Logger
	trainingService services.TrainingService
}

func NewTrainingHandler(log *logger.Logger, trainingService services.TrainingService) *TrainingHandler {
	handlerLog := log.With("handler", "TrainingHandler")
	return &TrainingHandler{log: handlerLog, trainingService: trainingService}
}

// Import accepts a multipart batch under the "files" field and runs the
// import pipeline over every file.
func (h *TrainingHandler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_multipart", err)
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		RespondError(c, http.StatusBadRequest, "no_files", fmt.Errorf("no files in request"))
		return
	}

	files := make([]services.UploadedFile, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "unreadable_file", fmt.Errorf("could not open %s: %w", fileHeader.Filename, err))
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "unreadable_file", fmt.Errorf("could not read %s: %w", fileHeader.Filename, err))
			return
		}
		files = append(files, services.UploadedFile{Filename: fileHeader.Filename, Content: content})
	}

	result, err := h.trainingService.ImportFiles(c.Request.Context(), files)
	if err != nil {
		if result != nil {
			// Commit failed. Item outcomes are still useful to the caller.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "result": result})
			return
		}
		RespondError(c, http.StatusInternalServerError, "import_failed", err)
		return
	}
	RespondOK(c, result)
}

func (h *TrainingHandler) List(c *gin.Context) {
	if operatorName := c.Query("operator"); operatorName != "" {
		records, err := h.trainingService.ListByOperator(c.Request.Context(), operatorName)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "list_failed", err)
			return
		}
		RespondOK(c, records)
		return
	}

	records, err := h.trainingService.ListRecords(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, records)
}
