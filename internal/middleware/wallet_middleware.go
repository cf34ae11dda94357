package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/services"
)

// Context keys set by the wallet middleware
const (
	ContextUserKey   = "currentUser"
	ContextWalletKey = "walletAddress"
)

// WalletHeader is the credential header checked first on every request
const WalletHeader = "X-Wallet-Address"

// maxCredentialBody caps how much of a request body the extractor will read
// when falling back to the JSON field.
const maxCredentialBody = 1 << 20

// WalletMiddleware resolves the caller's wallet credential into a user. The
// wallet address is the sole credential; there are no tokens or sessions.
type WalletMiddleware struct {
	identity services.IdentityService
}

// NewWalletMiddleware creates a new WalletMiddleware
func NewWalletMiddleware(identity services.IdentityService) *WalletMiddleware {
	return &WalletMiddleware{identity: identity}
}

// ExtractCredential pulls the wallet address out of a request without
// consuming it. Order of precedence: the X-Wallet-Address header, then the
// walletAddress query parameter, then a walletAddress field in a JSON body.
// The body is restored after reading so binding later in the handler chain
// still sees it; extraction is repeatable.
func ExtractCredential(c *gin.Context) string {
	if addr := strings.TrimSpace(c.GetHeader(WalletHeader)); addr != "" {
		return addr
	}
	if addr := strings.TrimSpace(c.Query("walletAddress")); addr != "" {
		return addr
	}

	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCredentialBody))
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		WalletAddress string `json:"walletAddress"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.WalletAddress)
}

// RequireIdentity resolves the credential to a user and aborts with 401 when
// none is supplied. The resolved user is stored on the context.
func (m *WalletMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := ExtractCredential(c)
		if addr == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("No wallet address supplied")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		user, _, err := m.identity.ResolveIdentity(c.Request.Context(), addr)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextWalletKey, addr)
		c.Next()
	}
}

// OptionalIdentity resolves the credential when one is present and continues
// anonymously otherwise.
func (m *WalletMiddleware) OptionalIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		addr := ExtractCredential(c)
		if addr == "" {
			c.Next()
			return
		}

		user, _, err := m.identity.ResolveIdentity(c.Request.Context(), addr)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextWalletKey, addr)
		c.Next()
	}
}

// CurrentUser returns the resolved user from the context, or nil for
// anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
