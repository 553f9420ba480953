package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitfinek-invest/invest_service/internal/infrastructure/adapters"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

var allowedProofExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// UploadHandlers handles proof-of-payment uploads
type UploadHandlers struct {
	storageService *adapters.StorageService
	logger         *logger.Logger
}

// NewUploadHandlers creates a new UploadHandlers instance
func NewUploadHandlers(storageService *adapters.StorageService, logger *logger.Logger) *UploadHandlers {
	return &UploadHandlers{
		storageService: storageService,
		logger:         logger,
	}
}

// UploadProof handles POST /api/v1/uploads/proof
func (h *UploadHandlers) UploadProof(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		SendBadRequest(c, ErrCodeMissingField, "File is required")
		return
	}

	name := strings.ToLower(fileHeader.Filename)
	dot := strings.LastIndex(name, ".")
	if dot < 0 || !allowedProofExtensions[name[dot:]] {
		SendBadRequest(c, ErrCodeInvalidRequest, "Unsupported file type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		SendInternalError(c, ErrCodeUploadFailed, "Failed to read file")
		return
	}
	defer file.Close()

	url, err := h.storageService.UploadProof(c.Request.Context(), userID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		h.logger.Error("Failed to upload proof", "error", err, "user_id", userID)
		SendInternalError(c, ErrCodeUploadFailed, "Failed to upload file")
		return
	}

	SendCreated(c, gin.H{"url": url})
}
