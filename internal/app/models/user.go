package models

import "time"

// User defines the user model based on the 'users' table. Users are created
// lazily by the identity resolver the first time a wallet address is seen;
// the wallet address is the only credential and is unique when present.
type User struct {
	ID             string    `json:"id" db:"id"`
	WalletAddress  *string   `json:"walletAddress,omitempty" db:"wallet_address"` // Unique when non-null
	Name           *string   `json:"name,omitempty" db:"name"`
	Email          *string   `json:"email,omitempty" db:"email"`
	Bio            *string   `json:"bio,omitempty" db:"bio"`
	Location       *string   `json:"location,omitempty" db:"location"`
	Website        *string   `json:"website,omitempty" db:"website"`
	ProfilePicture *string   `json:"profilePicture,omitempty" db:"profile_picture"` // Data URL
	BannerImage    *string   `json:"bannerImage,omitempty" db:"banner_image"`       // Data URL
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Follow represents one user following another, based on the 'follows' table.
// The (follower, following) pair is unique.
type Follow struct {
	ID          string    `json:"id" db:"id"`
	FollowerID  string    `json:"followerId" db:"follower_id"`
	FollowingID string    `json:"followingId" db:"following_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
