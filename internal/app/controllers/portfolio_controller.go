package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/models/dto"
	"github.com/subber-app/subber/internal/app/services"
	"github.com/subber-app/subber/internal/middleware"
)

// PortfolioController handles user portfolio items
type PortfolioController struct {
	portfolioService services.PortfolioService
}

// NewPortfolioController creates a new PortfolioController
func NewPortfolioController(portfolioService services.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolioService: portfolioService}
}

// ListPortfolio returns a user's portfolio in display order
func (c *PortfolioController) ListPortfolio(ctx *gin.Context) {
	items, err := c.portfolioService.ListPortfolio(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// CreateItem adds an item to the caller's portfolio
func (c *PortfolioController) CreateItem(ctx *gin.Context) {
	var req dto.CreatePortfolioItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	item, err := c.portfolioService.CreateItem(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item))
}

// UpdateItem applies changes to an item the caller owns
func (c *PortfolioController) UpdateItem(ctx *gin.Context) {
	var req dto.UpdatePortfolioItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondValidationError(ctx, err)
		return
	}

	user := middleware.CurrentUser(ctx)
	item, err := c.portfolioService.UpdateItem(ctx.Request.Context(), ctx.Param("itemId"), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// DeleteItem removes an item the caller owns
func (c *PortfolioController) DeleteItem(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := c.portfolioService.DeleteItem(ctx.Request.Context(), ctx.Param("itemId"), user.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Portfolio item deleted"}))
}
