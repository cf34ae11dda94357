package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/services"
	"github.com/subber-app/subber/internal/middleware"
)

// MessageController handles direct-message conversations
type MessageController struct {
	messageService services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// ListConversations returns the caller's conversations, most recently active
// first.
func (c *MessageController) ListConversations(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	conversations, err := c.messageService.ListConversations(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations))
}

// OpenConversation returns the conversation with another user, creating it
// when none exists yet.
func (c *MessageController) OpenConversation(ctx *gin.Context) {
	var req dto.CreateConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	conversation, err := c.messageService.OpenConversation(ctx.Request.Context(), user.ID, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(conversation))
}

// GetConversation returns a conversation's message history and marks the
// other participant's messages read.
func (c *MessageController) GetConversation(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	detail, err := c.messageService.GetConversation(ctx.Request.Context(), ctx.Param("id"), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// SendMessage appends a message to a conversation
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	message, err := c.messageService.SendMessage(ctx.Request.Context(), ctx.Param("id"), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}
