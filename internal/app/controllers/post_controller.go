package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/services"
	"github.com/subber-app/subber/internal/middleware"
)

// PostController handles posts and their comments
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// ListPosts returns a community's posts, newest first
func (c *PostController) ListPosts(ctx *gin.Context) {
	posts, err := c.postService.ListPosts(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// CreatePost creates a post in a community the caller belongs to
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	post, err := c.postService.CreatePost(ctx.Request.Context(), ctx.Param("slug"), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// GetPost returns one post with its author and comment count
func (c *PostController) GetPost(ctx *gin.Context) {
	post, err := c.postService.GetPost(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost removes a post the caller authored
func (c *PostController) DeletePost(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.postService.DeletePost(ctx.Request.Context(), ctx.Param("id"), user.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Post deleted"}))
}

// ListComments returns a post's comments, oldest first
func (c *PostController) ListComments(ctx *gin.Context) {
	comments, err := c.postService.ListComments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// CreateComment adds a comment to a post
func (c *PostController) CreateComment(ctx *gin.Context) {
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	comment, err := c.postService.CreateComment(ctx.Request.Context(), ctx.Param("id"), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}
