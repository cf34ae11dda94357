package dto

import "time"

// CreateConversationRequest opens (or returns) a conversation with another user
type CreateConversationRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// SendMessageRequest sends a message into a conversation
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// LastMessagePreview is the trailing message shown in conversation lists
type LastMessagePreview struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationSummary is one row of the caller's conversation list
type ConversationSummary struct {
	ID          string              `json:"id"`
	OtherUser   UserSummary         `json:"otherUser"`
	LastMessage *LastMessagePreview `json:"lastMessage"`
	UnreadCount int64               `json:"unreadCount"`
}

// MessageResponse is a single message within a conversation
type MessageResponse struct {
	ID        string     `json:"id"`
	SenderID  string     `json:"senderId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// ConversationDetail is a conversation with its full message history
type ConversationDetail struct {
	ID        string            `json:"id"`
	OtherUser UserSummary       `json:"otherUser"`
	Messages  []MessageResponse `json:"messages"`
}

// ConversationCreatedResponse returns the id of the opened conversation
type ConversationCreatedResponse struct {
	ID string `json:"id"`
}
