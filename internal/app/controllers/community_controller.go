package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/services"
	"github.com/subber-app/subber/internal/middleware"
)

// CommunityController handles community CRUD, membership and analytics
type CommunityController struct {
	communityService services.CommunityService
	analyticsService services.AnalyticsService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService, analyticsService services.AnalyticsService) *CommunityController {
	return &CommunityController{
		communityService: communityService,
		analyticsService: analyticsService,
	}
}

// ListCommunities returns all communities with their counters
func (c *CommunityController) ListCommunities(ctx *gin.Context) {
	communities, err := c.communityService.ListCommunities(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(communities))
}

// GetTrending returns the ranked trending communities
func (c *CommunityController) GetTrending(ctx *gin.Context) {
	trending, err := c.analyticsService.ComputeTrending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trending))
}

// GetCommunity returns one community by slug
func (c *CommunityController) GetCommunity(ctx *gin.Context) {
	viewerID := ""
	if viewer := middleware.CurrentUser(ctx); viewer != nil {
		viewerID = viewer.ID
	}

	community, err := c.communityService.GetCommunity(ctx.Request.Context(), ctx.Param("slug"), viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community))
}

// CreateCommunity creates a community; the caller becomes its admin
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	var req dto.CreateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	community, err := c.communityService.CreateCommunity(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(community))
}

// UpdateRules replaces a community's rules and guidelines
func (c *CommunityController) UpdateRules(ctx *gin.Context) {
	var req dto.UpdateRulesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	if err := c.communityService.UpdateRules(ctx.Request.Context(), ctx.Param("slug"), user.ID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Rules updated"}))
}

// JoinCommunity adds the caller to a community
func (c *CommunityController) JoinCommunity(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.communityService.JoinCommunity(ctx.Request.Context(), ctx.Param("slug"), user.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Joined community"}))
}

// LeaveCommunity removes the caller from a community
func (c *CommunityController) LeaveCommunity(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.communityService.LeaveCommunity(ctx.Request.Context(), ctx.Param("slug"), user.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Left community"}))
}

// GetMembers returns a community's member list
func (c *CommunityController) GetMembers(ctx *gin.Context) {
	members, err := c.communityService.GetMembers(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// GetActivity returns a community's recent activity feed
func (c *CommunityController) GetActivity(ctx *gin.Context) {
	events, err := c.communityService.GetActivity(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetAnalytics returns the recomputed statistics of one community
func (c *CommunityController) GetAnalytics(ctx *gin.Context) {
	community, err := c.communityService.GetCommunity(ctx.Request.Context(), ctx.Param("slug"), "")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stats, err := c.analyticsService.ComputeCommunityStats(ctx.Request.Context(), community.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
