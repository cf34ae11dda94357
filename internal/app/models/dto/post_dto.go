package dto

import "time"

// CreatePostRequest creates a post in a community
type CreatePostRequest struct {
	Title   string  `json:"title" binding:"required,min=1,max=300"`
	Content string  `json:"content" binding:"required,min=1,max=10000"`
	Image   *string `json:"image,omitempty"`
}

// CreateCommentRequest adds a comment to a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// PostResponse is the standard post shape with its author embedded
type PostResponse struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Image        *string     `json:"image,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Author       UserSummary `json:"author"`
	CommunityID  string      `json:"communityId"`
	CommentCount int64       `json:"commentCount"`
}

// CommentResponse is the standard comment shape with its author embedded
type CommentResponse struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Author    UserSummary `json:"author"`
}
