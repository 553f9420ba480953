package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/profile"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// ProfileHandlers handles the authenticated user's profile
type ProfileHandlers struct {
	profileService *profile.Service
	validator      *validator.Validate
	logger         *logger.Logger
}

// NewProfileHandlers creates a new ProfileHandlers instance
func NewProfileHandlers(profileService *profile.Service, logger *logger.Logger) *ProfileHandlers {
	return &ProfileHandlers{
		profileService: profileService,
		validator:      validator.New(),
		logger:         logger,
	}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandlers) GetProfile(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	found, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, found)
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandlers) UpdateProfile(c *gin.Context) {
	var req entities.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeInvalidRequest, MsgInvalidRequest)
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		SendBadRequest(c, ErrCodeValidationError, err.Error())
		return
	}

	updated, err := h.profileService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to update profile", "error", err, "user_id", userID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, updated)
}
