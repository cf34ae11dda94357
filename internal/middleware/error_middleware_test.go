package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"missing credential", apperrors.ErrMissingCredential, http.StatusBadRequest, dto.ErrorCodeMissingCredential},
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"community not found", apperrors.ErrCommunityNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"slug taken", apperrors.ErrSlugTaken, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"already member", apperrors.ErrAlreadyMember, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"already following", apperrors.ErrAlreadyFollowing, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"self follow", apperrors.ErrSelfFollow, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"self conversation", apperrors.ErrSelfConversation, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"storage failure", apperrors.NewStorageError(assert.AnError), http.StatusInternalServerError, dto.ErrorCodeStorageUnavailable},
		{"unknown error", assert.AnError, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var resp dto.APIResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
