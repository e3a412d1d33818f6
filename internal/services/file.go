package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/utils"
)

// FileService persists uploaded documents on local disk and hands back a
// stable relative URL for the stored object.
type FileService interface {
	SaveTrainingFile(operatorName, documentType string, content []byte, originalFilename string) (string, error)
	SaveAvatar(handle string, content []byte) (string, error)
	Remove(relativeURL string) error
}

type fileService struct {
	log       *logger.Logger
	uploadDir string
}

var unsafePathChars = regexp.MustCompile(`[^a-z0-9_\-]`)

func NewFileService(log *logger.Logger) (FileService, error) {
	serviceLog := log.With("service", "FileService")

	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads", log)
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("Failed to create upload directory: %w", err)
	}

	return &fileService{log: serviceLog, uploadDir: uploadDir}, nil
}

func (fs *fileService) SaveTrainingFile(operatorName, documentType string, content []byte, originalFilename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext == "" {
		ext = ".pdf"
	}
	name := uuid.New().String() + ext

	dir := filepath.Join(fs.uploadDir, sanitizePathSegment(operatorName), "training", sanitizePathSegment(documentType))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("Failed to create training file directory: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", fmt.Errorf("Failed to write training file: %w", err)
	}

	url := "/" + filepath.ToSlash(fullPath)
	fs.log.Debug("Saved training file", "url", url, "bytes", len(content))
	return url, nil
}

func (fs *fileService) SaveAvatar(handle string, content []byte) (string, error) {
	dir := filepath.Join(fs.uploadDir, "avatars", sanitizePathSegment(handle))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("Failed to create avatar directory: %w", err)
	}

	fullPath := filepath.Join(dir, uuid.New().String()+".png")
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", fmt.Errorf("Failed to write avatar: %w", err)
	}

	return "/" + filepath.ToSlash(fullPath), nil
}

// Remove deletes a previously stored object. Paths outside the upload
// directory are rejected.
func (fs *fileService) Remove(relativeURL string) error {
	cleaned := filepath.Clean(strings.TrimPrefix(relativeURL, "/"))
	if cleaned != fs.uploadDir && !strings.HasPrefix(cleaned, fs.uploadDir+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove path outside upload directory: %s", relativeURL)
	}
	return os.Remove(cleaned)
}

// sanitizePathSegment lowercases and replaces anything outside [a-z0-9_-]
// so operator names and document types are safe as directory names.
func sanitizePathSegment(segment string) string {
	segment = strings.ToLower(strings.TrimSpace(segment))
	segment = strings.ReplaceAll(segment, " ", "_")
	segment = unsafePathChars.ReplaceAllString(segment, "_")
	if segment == "" {
		segment = "unknown"
	}
	return segment
}
