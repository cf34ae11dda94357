package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Every controller
// funnels failures through here so the envelope and status codes stay
// uniform.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMissingCredential):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeMissingCredential, "Wallet address is required")
	case errors.Is(err, apperrors.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrSelfFollow):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "You cannot follow yourself")
	case errors.Is(err, apperrors.ErrSelfConversation):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "You cannot message yourself")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrCommunityNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Community not found")
	case errors.Is(err, apperrors.ErrPostNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Post not found")
	case errors.Is(err, apperrors.ErrConversationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Conversation not found")
	case errors.Is(err, apperrors.ErrPortfolioNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Portfolio item not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrSlugTaken):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "A community with this name already exists")
	case errors.Is(err, apperrors.ErrAlreadyMember):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already a member of this community")
	case errors.Is(err, apperrors.ErrNotMember):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Not a member of this community")
	case errors.Is(err, apperrors.ErrAlreadyFollowing):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already following this user")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		logger.Error().Err(err).Msg("Storage failure")
		respondCritical(c, dto.ErrorCodeStorageUnavailable, "Storage unavailable")
	default:
		logger.Error().Err(err).Msg("Unhandled error")
		respondCritical(c, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func respondCritical(c *gin.Context, code dto.ErrorCode, message string) {
	detail := dto.NewErrorDetail(code, message).WithSeverity(dto.ErrorSeverityCritical)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
}

// messageOf prefers the wrapped CustomError message when one is present
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
