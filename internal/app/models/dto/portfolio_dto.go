package dto

// CreatePortfolioItemRequest adds an item to the caller's portfolio
type CreatePortfolioItemRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	Image       *string  `json:"image,omitempty"`
	Link        *string  `json:"link,omitempty" binding:"omitempty,max=500"`
	Tags        []string `json:"tags,omitempty"`
	SortOrder   *int     `json:"order,omitempty"`
}

// UpdatePortfolioItemRequest updates an existing portfolio item; absent fields
// are left unchanged.
type UpdatePortfolioItemRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	Image       *string  `json:"image,omitempty"`
	Link        *string  `json:"link,omitempty" binding:"omitempty,max=500"`
	Tags        []string `json:"tags,omitempty"`
	SortOrder   *int     `json:"order,omitempty"`
}
