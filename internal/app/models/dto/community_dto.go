package dto

import "time"

// CreateCommunityRequest creates a new community. The slug is derived from the
// name server-side and is not accepted from the client.
type CreateCommunityRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=50"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
}

// UpdateRulesRequest replaces a community's rules and guidelines text
type UpdateRulesRequest struct {
	Rules      string `json:"rules" binding:"max=5000"`
	Guidelines string `json:"guidelines" binding:"max=5000"`
}

// CommunityCounts carries the membership/content counters of a community
type CommunityCounts struct {
	Members int64 `json:"members"`
	Posts   int64 `json:"posts"`
}

// CommunityResponse is the standard community list/detail shape
type CommunityResponse struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Counts      CommunityCounts `json:"_count"`
}

// CommunityDetailResponse is the full community shape, including rules and
// the caller's membership when a credential was supplied.
type CommunityDetailResponse struct {
	CommunityResponse
	Rules      *string `json:"rules,omitempty"`
	Guidelines *string `json:"guidelines,omitempty"`
	IsMember   bool    `json:"isMember"`
	MemberRole *string `json:"memberRole,omitempty"`
}

// ActivityEventResponse is one entry of a community's activity feed
type ActivityEventResponse struct {
	Type      string      `json:"type"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// TrendingCommunityResponse is a CommunityResponse annotated with the
// 24-hour new-member count the trending classification is based on.
type TrendingCommunityResponse struct {
	CommunityResponse
	NewMembers24h int64 `json:"newMembers24h"`
}

// MemberResponse is one row of a community member list
type MemberResponse struct {
	User     UserSummary `json:"user"`
	Role     string      `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

// DailyActivity is one calendar day of community activity. Days with no
// activity at all are omitted from responses, not zero-filled.
type DailyActivity struct {
	Date        time.Time `json:"date"`
	NewMembers  int64     `json:"newMembers"`
	NewPosts    int64     `json:"newPosts"`
	NewComments int64     `json:"newComments"`
}

// CommunityStatsResponse is the analytics payload for one community
type CommunityStatsResponse struct {
	TotalMembers   int64           `json:"totalMembers"`
	TotalPosts     int64           `json:"totalPosts"`
	TotalComments  int64           `json:"totalComments"`
	GrowthRate     int             `json:"growthRate"`
	RecentActivity []DailyActivity `json:"recentActivity"`
}
