package models

import "time"

// Post represents a post inside a community
type Post struct {
	ID          string    `json:"id" db:"id"`
	CommunityID string    `json:"communityId" db:"community_id"`
	AuthorID    string    `json:"authorId" db:"author_id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	Image       *string   `json:"image,omitempty" db:"image"` // Data URL
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author    *User      `json:"author,omitempty"`
	Community *Community `json:"community,omitempty"`
}

// Comment represents a comment on a post
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}
