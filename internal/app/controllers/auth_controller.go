package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/services"
	"github.com/subber-app/subber/internal/middleware"
)

// AuthController handles wallet identity resolution
type AuthController struct {
	identityService services.IdentityService
}

// NewAuthController creates a new AuthController
func NewAuthController(identityService services.IdentityService) *AuthController {
	return &AuthController{identityService: identityService}
}

// ResolveWallet resolves a wallet address to a user account, creating the
// account on first contact. Responds 201 when a new account was created and
// 200 when the address was already known.
func (c *AuthController) ResolveWallet(ctx *gin.Context) {
	var req dto.WalletAuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeMissingCredential, "Wallet address is required").
			WithField("walletAddress")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, created, err := c.identityService.ResolveIdentity(ctx.Request.Context(), req.WalletAddress)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.NewSuccessResponse(dto.AuthResponse{User: user, Created: created}))
}

// Me returns the account of the calling wallet without creating one
func (c *AuthController) Me(ctx *gin.Context) {
	addr := middleware.ExtractCredential(ctx)
	user, err := c.identityService.LookupIdentity(ctx.Request.Context(), addr)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}
