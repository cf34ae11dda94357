package dto

import "time"

// UserSummary is the embedded author/participant shape used across responses
type UserSummary struct {
	ID             string  `json:"id"`
	Name           *string `json:"name"`
	WalletAddress  *string `json:"walletAddress,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// UserListItem is one row of the user directory
type UserListItem struct {
	ID             string    `json:"id"`
	Name           *string   `json:"name"`
	Bio            *string   `json:"bio,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	FollowerCount  int64     `json:"followerCount"`
	PostCount      int64     `json:"postCount"`
}

// UserDetailResponse is the public profile of a single user
type UserDetailResponse struct {
	ID             string    `json:"id"`
	Name           *string   `json:"name"`
	Bio            *string   `json:"bio,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Website        *string   `json:"website,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	BannerImage    *string   `json:"bannerImage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	FollowerCount  int64     `json:"followerCount"`
	FollowingCount int64     `json:"followingCount"`
	PostCount      int64     `json:"postCount"`
	IsFollowing    bool      `json:"isFollowing"`
}

// UpdateProfileRequest updates the caller's profile. The wallet address may be
// carried in the body for clients that do not set the credential header; empty
// strings clear the corresponding field.
type UpdateProfileRequest struct {
	WalletAddress  string  `json:"walletAddress,omitempty"`
	Name           *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Bio            *string `json:"bio,omitempty" binding:"omitempty,max=1000"`
	Location       *string `json:"location,omitempty" binding:"omitempty,max=200"`
	Website        *string `json:"website,omitempty" binding:"omitempty,max=500"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	BannerImage    *string `json:"bannerImage,omitempty"`
}
