package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schedsync/internal/adapter/http/dto"
	"schedsync/internal/adapter/http/mapper"
	"schedsync/internal/adapter/http/validation"
	"schedsync/internal/core/ports"
	"schedsync/pkg/apierrors"
)

type GenerationHandler struct {
	generationService ports.GenerationService
}

func NewGenerationHandler(generationService ports.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// Generate runs at most one generation per user; a concurrent request gets 409.
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidGeneratePayload)
		return
	}

	profile, err := validation.BuildUserProfile(req.Profile)
	if err != nil {
		invalidField(c, err, apierrors.MsgInvalidGeneratePayload)
		return
	}

	schedule, err := h.generationService.Generate(c.Request.Context(), req.UserID, profile)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGenerateSchedule)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToScheduleItem(schedule))
}

func (h *GenerationHandler) Status(c *gin.Context) {
	userID, ok := pathID(c, "userId", apierrors.MsgInvalidUserID)
	if !ok {
		return
	}

	generating, err := h.generationService.IsGenerating(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGenerationStatus)
		return
	}

	c.JSON(http.StatusOK, dto.GenerationStatus{UserID: userID, Generating: generating})
}
