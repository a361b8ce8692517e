package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schedsync/internal/adapter/http/middleware"
	"schedsync/internal/core/domain"
	"schedsync/pkg/apierrors"
)

// respondError maps a service error onto an HTTP status and a translated
// message. failKey is used for anything unexpected.
func respondError(c *gin.Context, err error, failKey string) {
	lang := middleware.GetLang(c)

	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrGenerationInProgress):
		abort(c, apierrors.CreateError(http.StatusConflict, apierrors.MsgGenerationInProgress, lang))
	case errors.Is(err, domain.ErrGenerationFailed):
		zap.L().Error("schedule generation failed", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		abort(c, apierrors.CreateError(http.StatusBadGateway, apierrors.MsgGenerationFailed, lang))
	case errors.Is(err, domain.ErrScheduleNotFound):
		abort(c, apierrors.CreateError(http.StatusNotFound, apierrors.MsgScheduleNotFound, lang))
	case errors.Is(err, domain.ErrTaskNotFound):
		abort(c, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, domain.ErrInvalidIndex):
		abort(c, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskIndex, lang))
	case errors.Is(err, domain.ErrScheduleOverflow):
		abort(c, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgScheduleOverflow, lang))
	case errors.As(err, &validationErr):
		abort(c, apierrors.CreateFieldError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang, validationErr.Field))
	default:
		zap.L().Error("request failed", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		_ = c.Error(err)
		abort(c, apierrors.CreateError(http.StatusInternalServerError, failKey, lang))
	}
}

// invalidField reports a payload validation error under msgKey.
func invalidField(c *gin.Context, err error, msgKey string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		abort(c, apierrors.CreateFieldError(http.StatusBadRequest, msgKey, middleware.GetLang(c), validationErr.Field))
		return
	}
	badRequest(c, msgKey)
}

func badRequest(c *gin.Context, msgKey string) {
	abort(c, apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)))
}

func abort(c *gin.Context, err apierrors.JsonErr) {
	c.AbortWithStatusJSON(err.ErrDetails.Code, err)
}
