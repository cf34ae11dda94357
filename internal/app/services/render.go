package services

import (
	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/app/models/dto"
)

// userSummary maps a user row to the embedded author/participant shape. A nil
// user yields a zero summary rather than a panic; joins always populate it.
func userSummary(u *models.User) dto.UserSummary {
	if u == nil {
		return dto.UserSummary{}
	}
	return dto.UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		WalletAddress:  u.WalletAddress,
		ProfilePicture: u.ProfilePicture,
	}
}
