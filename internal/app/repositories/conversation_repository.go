package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/pkg/apperrors"
	"github.com/subber-app/subber/internal/pkg/dberrors"
)

// ConversationRepository handles database operations for conversations and messages
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// orderPair normalizes a participant pair so the unordered pair maps to one row.
func orderPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

const conversationColumns = `id, user1_id, user2_id, created_at, last_message_at`

func scanConversation(row pgx.Row) (*models.Conversation, error) {
	var c models.Conversation
	if err := row.Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt, &c.LastMessageAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByParticipants retrieves the conversation between two users regardless
// of argument order, or ErrConversationNotFound.
func (r *ConversationRepository) FindByParticipants(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	u1, u2 := orderPair(userA, userB)
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE user1_id = $1 AND user2_id = $2`

	conv, err := scanConversation(r.db.QueryRow(ctx, query, u1, u2))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}
	return conv, nil
}

// Create inserts a conversation for an unordered participant pair. A
// concurrent create for the same pair loses to the unique constraint and is
// surfaced as ErrConflict so the caller can retry as a lookup.
func (r *ConversationRepository) Create(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	u1, u2 := orderPair(userA, userB)
	query := `
		INSERT INTO conversations (id, user1_id, user2_id, created_at, last_message_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + conversationColumns

	conv, err := scanConversation(r.db.QueryRow(ctx, query, uuid.NewString(), u1, u2))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("conversation already exists for this pair")
		}
		return nil, apperrors.NewStorageError(err)
	}
	return conv, nil
}

// GetByID retrieves a conversation by id
func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	conv, err := scanConversation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.NewStorageError(err)
	}
	return conv, nil
}

// ListForUser returns a user's conversations, most recently active first
func (r *ConversationRepository) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY last_message_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	conversations := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt, &c.LastMessageAt); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return conversations, nil
}

// InsertMessage appends a message and bumps the conversation's last activity
func (r *ConversationRepository) InsertMessage(ctx context.Context, conversationID, senderID, content string) (*models.Message, error) {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, conversation_id, sender_id, content, created_at, read_at`

	var m models.Message
	err := r.db.QueryRow(ctx, query, uuid.NewString(), conversationID, senderID, content).Scan(
		&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt, &m.ReadAt,
	)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	if _, err := r.db.Exec(ctx, `UPDATE conversations SET last_message_at = NOW() WHERE id = $1`, conversationID); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return &m, nil
}

// ListMessages returns a conversation's messages in chronological order
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, created_at, read_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt, &m.ReadAt); err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return messages, nil
}

// LastMessage returns the most recent message of a conversation, or nil
func (r *ConversationRepository) LastMessage(ctx context.Context, conversationID string) (*models.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, created_at, read_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var m models.Message
	err := r.db.QueryRow(ctx, query, conversationID).Scan(
		&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt, &m.ReadAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError(err)
	}
	return &m, nil
}

// UnreadCount counts messages sent to the given user that are still unread
func (r *ConversationRepository) UnreadCount(ctx context.Context, conversationID, userID string) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*)
		FROM messages
		WHERE conversation_id = $1 AND sender_id != $2 AND read_at IS NULL`
	if err := r.db.QueryRow(ctx, query, conversationID, userID).Scan(&count); err != nil {
		return 0, apperrors.NewStorageError(err)
	}
	return count, nil
}

// MarkRead stamps all messages addressed to the given user as read
func (r *ConversationRepository) MarkRead(ctx context.Context, conversationID, userID string) error {
	query := `
		UPDATE messages
		SET read_at = NOW()
		WHERE conversation_id = $1 AND sender_id != $2 AND read_at IS NULL`
	if _, err := r.db.Exec(ctx, query, conversationID, userID); err != nil {
		return apperrors.NewStorageError(err)
	}
	return nil
}
