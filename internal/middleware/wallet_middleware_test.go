package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubIdentityService struct {
	users map[string]*models.User
}

func (s *stubIdentityService) ResolveIdentity(_ context.Context, walletAddress string) (*models.User, bool, error) {
	if walletAddress == "" {
		return nil, false, apperrors.ErrMissingCredential
	}
	if user, ok := s.users[walletAddress]; ok {
		return user, false, nil
	}
	user := &models.User{ID: "u-" + walletAddress, WalletAddress: &walletAddress}
	if s.users == nil {
		s.users = map[string]*models.User{}
	}
	s.users[walletAddress] = user
	return user, true, nil
}

func (s *stubIdentityService) LookupIdentity(_ context.Context, walletAddress string) (*models.User, error) {
	user, _, err := s.ResolveIdentity(context.Background(), walletAddress)
	return user, err
}

func testContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	return c, recorder
}

func TestExtractCredentialHeaderWins(t *testing.T) {
	body := strings.NewReader(`{"walletAddress":"0xBody"}`)
	req := httptest.NewRequest(http.MethodPost, "/x?walletAddress=0xQuery", body)
	req.Header.Set(WalletHeader, "0xHeader")

	c, _ := testContext(req)
	assert.Equal(t, "0xHeader", ExtractCredential(c))
}

func TestExtractCredentialQueryBeforeBody(t *testing.T) {
	body := strings.NewReader(`{"walletAddress":"0xBody"}`)
	req := httptest.NewRequest(http.MethodPost, "/x?walletAddress=0xQuery", body)

	c, _ := testContext(req)
	assert.Equal(t, "0xQuery", ExtractCredential(c))
}

func TestExtractCredentialFromBody(t *testing.T) {
	body := strings.NewReader(`{"walletAddress":"0xBody","name":"n"}`)
	req := httptest.NewRequest(http.MethodPost, "/x", body)

	c, _ := testContext(req)
	assert.Equal(t, "0xBody", ExtractCredential(c))
}

func TestExtractCredentialRestoresBody(t *testing.T) {
	payload := `{"walletAddress":"0xBody","name":"keep me"}`
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(payload))

	c, _ := testContext(req)
	assert.Equal(t, "0xBody", ExtractCredential(c))

	// Extraction is repeatable
	assert.Equal(t, "0xBody", ExtractCredential(c))

	// And the handler can still read the full body afterwards
	remaining, err := io.ReadAll(c.Request.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(remaining))
}

func TestExtractCredentialEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	c, _ := testContext(req)
	assert.Equal(t, "", ExtractCredential(c))
}

func TestExtractCredentialMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader([]byte("not json")))
	c, _ := testContext(req)
	assert.Equal(t, "", ExtractCredential(c))
}

func TestRequireIdentityRejectsAnonymous(t *testing.T) {
	m := NewWalletMiddleware(&stubIdentityService{})

	router := gin.New()
	router.GET("/private", m.RequireIdentity(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireIdentitySetsCurrentUser(t *testing.T) {
	m := NewWalletMiddleware(&stubIdentityService{})

	var seen *models.User
	router := gin.New()
	router.GET("/private", m.RequireIdentity(), func(c *gin.Context) {
		seen = CurrentUser(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(WalletHeader, "0xWallet")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u-0xWallet", seen.ID)
}

func TestOptionalIdentityAllowsAnonymous(t *testing.T) {
	m := NewWalletMiddleware(&stubIdentityService{})

	router := gin.New()
	router.GET("/public", m.OptionalIdentity(), func(c *gin.Context) {
		assert.Nil(t, CurrentUser(c))
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/public", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
