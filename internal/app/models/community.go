package models

import "time"

// MemberRole represents a member's role within a community
type MemberRole string

const (
	RoleAdmin     MemberRole = "admin"
	RoleModerator MemberRole = "moderator"
	RoleMember    MemberRole = "member"
)

// Community represents a named group of users. The slug is derived from the
// name once at creation and never recomputed afterwards.
type Community struct {
	ID          string    `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Rules       *string   `json:"rules,omitempty" db:"rules"`
	Guidelines  *string   `json:"guidelines,omitempty" db:"guidelines"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CommunityMember links a user to a community with a role. The
// (community, user) pair is unique; joining twice is rejected.
type CommunityMember struct {
	ID          string     `json:"id" db:"id"`
	CommunityID string     `json:"communityId" db:"community_id"`
	UserID      string     `json:"userId" db:"user_id"`
	Role        MemberRole `json:"role" db:"role"`
	JoinedAt    time.Time  `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
