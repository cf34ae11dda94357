package models

import "time"

// PortfolioItem represents an entry in a user's portfolio
type PortfolioItem struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Image       *string   `json:"image,omitempty" db:"image"` // Data URL
	Link        *string   `json:"link,omitempty" db:"link"`
	Tags        []string  `json:"tags" db:"tags"`
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
