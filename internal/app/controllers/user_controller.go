package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/services"
	"github.com/subber-app/subber/internal/middleware"
	"github.com/subber-app/subber/internal/pkg/helpers"
)

// UserController handles the user directory, profiles and follows
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers returns a page of the user directory. Supports search, page and
// size query parameters.
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	search := ctx.Query("search")

	users, pagination, err := c.userService.ListUsers(ctx.Request.Context(), search, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"users":      users,
		"pagination": pagination,
	}))
}

// SearchUsers matches users against the q query parameter
func (c *UserController) SearchUsers(ctx *gin.Context) {
	results, err := c.userService.SearchUsers(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}

// GetUser returns one user's public profile. For authenticated callers the
// response reports whether they follow the user.
func (c *UserController) GetUser(ctx *gin.Context) {
	viewerID := ""
	if viewer := middleware.CurrentUser(ctx); viewer != nil {
		viewerID = viewer.ID
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), ctx.Param("id"), viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// UpdateProfile applies profile changes for the calling wallet
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	updated, err := c.userService.UpdateProfile(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// FollowUser makes the caller follow the target user
func (c *UserController) FollowUser(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.userService.FollowUser(ctx.Request.Context(), user.ID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Followed"}))
}

// UnfollowUser removes the caller's follow of the target user
func (c *UserController) UnfollowUser(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.userService.UnfollowUser(ctx.Request.Context(), user.ID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Unfollowed"}))
}
