package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/subber-app/subber/internal/app/models"
	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/repositories"
	"github.com/subber-app/subber/internal/pkg/apperrors"
)

// MessageService defines the interface for direct-message operations
type MessageService interface {
	ListConversations(ctx context.Context, userID string) ([]dto.ConversationSummary, error)
	OpenConversation(ctx context.Context, userID, otherUserID string) (*dto.ConversationCreatedResponse, error)
	GetConversation(ctx context.Context, conversationID, userID string) (*dto.ConversationDetail, error)
	SendMessage(ctx context.Context, conversationID, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	conversationRepo *repositories.ConversationRepository
	userRepo         *repositories.UserRepository
	logger           zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	conversationRepo *repositories.ConversationRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) MessageService {
	return &messageServiceImpl{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// ListConversations returns the caller's conversations most recently active
// first, each with the other participant, the trailing message and the
// caller's unread count.
func (s *messageServiceImpl) ListConversations(ctx context.Context, userID string) ([]dto.ConversationSummary, error) {
	conversations, err := s.conversationRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ConversationSummary, 0, len(conversations))
	for i := range conversations {
		conv := &conversations[i]

		other, err := s.userRepo.GetByID(ctx, conv.OtherParticipant(userID))
		if err != nil {
			return nil, err
		}

		last, err := s.conversationRepo.LastMessage(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		var preview *dto.LastMessagePreview
		if last != nil {
			preview = &dto.LastMessagePreview{Content: last.Content, CreatedAt: last.CreatedAt}
		}

		unread, err := s.conversationRepo.UnreadCount(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, dto.ConversationSummary{
			ID:          conv.ID,
			OtherUser:   userSummary(other),
			LastMessage: preview,
			UnreadCount: unread,
		})
	}
	return summaries, nil
}

// OpenConversation returns the conversation between the caller and another
// user, creating it if none exists. Opening a conversation with yourself is
// rejected; concurrent opens for the same pair converge on one row.
func (s *messageServiceImpl) OpenConversation(ctx context.Context, userID, otherUserID string) (*dto.ConversationCreatedResponse, error) {
	if userID == otherUserID {
		return nil, apperrors.ErrSelfConversation
	}
	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	conv, err := s.conversationRepo.FindByParticipants(ctx, userID, otherUserID)
	if err == nil {
		return &dto.ConversationCreatedResponse{ID: conv.ID}, nil
	}
	if !errors.Is(err, apperrors.ErrConversationNotFound) {
		return nil, err
	}

	conv, err = s.conversationRepo.Create(ctx, userID, otherUserID)
	if err == nil {
		return &dto.ConversationCreatedResponse{ID: conv.ID}, nil
	}

	// Lost the insert race; the winner's row is the conversation.
	if errors.Is(err, apperrors.ErrConflict) {
		conv, err = s.conversationRepo.FindByParticipants(ctx, userID, otherUserID)
		if err != nil {
			return nil, err
		}
		return &dto.ConversationCreatedResponse{ID: conv.ID}, nil
	}
	return nil, err
}

// GetConversation returns a conversation with its full message history and
// marks the other participant's messages as read. Non-participants are
// refused.
func (s *messageServiceImpl) GetConversation(ctx context.Context, conversationID, userID string) (*dto.ConversationDetail, error) {
	conv, err := s.participantConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	other, err := s.userRepo.GetByID(ctx, conv.OtherParticipant(userID))
	if err != nil {
		return nil, err
	}

	messages, err := s.conversationRepo.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	if err := s.conversationRepo.MarkRead(ctx, conv.ID, userID); err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messageResponse(&messages[i]))
	}

	return &dto.ConversationDetail{
		ID:        conv.ID,
		OtherUser: userSummary(other),
		Messages:  responses,
	}, nil
}

// SendMessage appends a message to a conversation the sender participates in
func (s *messageServiceImpl) SendMessage(ctx context.Context, conversationID, senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if _, err := s.participantConversation(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	message, err := s.conversationRepo.InsertMessage(ctx, conversationID, senderID, req.Content)
	if err != nil {
		return nil, err
	}

	resp := messageResponse(message)
	return &resp, nil
}

func (s *messageServiceImpl) participantConversation(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.User1ID != userID && conv.User2ID != userID {
		return nil, apperrors.NewForbiddenError("not a participant in this conversation")
	}
	return conv, nil
}

func messageResponse(m *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		ReadAt:    m.ReadAt,
	}
}
