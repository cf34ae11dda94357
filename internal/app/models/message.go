package models

import "time"

// Conversation represents a direct-message thread between two users. The
// participant pair is stored normalized (user1 < user2) so the unordered pair
// is unique at the storage layer.
type Conversation struct {
	ID            string    `json:"id" db:"id"`
	User1ID       string    `json:"user1Id" db:"user1_id"`
	User2ID       string    `json:"user2Id" db:"user2_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	LastMessageAt time.Time `json:"lastMessageAt" db:"last_message_at"`
}

// OtherParticipant returns the participant that is not the given user.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Message represents a single direct message within a conversation
type Message struct {
	ID             string     `json:"id" db:"id"`
	ConversationID string     `json:"conversationId" db:"conversation_id"`
	SenderID       string     `json:"senderId" db:"sender_id"`
	Content        string     `json:"content" db:"content"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	ReadAt         *time.Time `json:"readAt,omitempty" db:"read_at"`

	// Related entities
	Sender *User `json:"sender,omitempty"`
}
