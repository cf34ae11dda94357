package dto

import "github.com/subber-app/subber/internal/app/models"

// WalletAuthRequest is the resolve-or-create request body. The wallet address
// is matched byte-exactly; no normalization is applied.
type WalletAuthRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// AuthResponse carries the resolved user identity
type AuthResponse struct {
	User    *models.User `json:"user"`
	Created bool         `json:"created"`
}
