package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/subber-app/subber/internal/app/controllers"
	"github.com/subber-app/subber/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	communityController *controllers.CommunityController,
	postController *controllers.PostController,
	messageController *controllers.MessageController,
	portfolioController *controllers.PortfolioController,
	walletMiddleware *middleware.WalletMiddleware,
) {
	api := router.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/wallet", authController.ResolveWallet)
		auth.GET("/me", authController.Me)
	}

	// --- User directory and profiles ---
	users := api.Group("/users")
	{
		users.GET("", userController.ListUsers)
		users.GET("/search", userController.SearchUsers)
		users.GET("/:id", walletMiddleware.OptionalIdentity(), userController.GetUser)
		users.GET("/:id/portfolio", portfolioController.ListPortfolio)

		usersAuthed := users.Group("")
		usersAuthed.Use(walletMiddleware.RequireIdentity())
		{
			usersAuthed.POST("/:id/follow", userController.FollowUser)
			usersAuthed.DELETE("/:id/follow", userController.UnfollowUser)
		}
	}

	// --- Caller profile ---
	profile := api.Group("/profile")
	{
		profile.GET("", authController.Me)
		profile.PUT("", walletMiddleware.RequireIdentity(), userController.UpdateProfile)
	}

	// --- Portfolio ---
	portfolio := api.Group("/portfolio")
	portfolio.Use(walletMiddleware.RequireIdentity())
	{
		portfolio.POST("", portfolioController.CreateItem)
		portfolio.PUT("/:itemId", portfolioController.UpdateItem)
		portfolio.DELETE("/:itemId", portfolioController.DeleteItem)
	}

	// --- Communities ---
	communities := api.Group("/communities")
	{
		communities.GET("", communityController.ListCommunities)
		communities.GET("/trending", communityController.GetTrending)
		communities.GET("/:slug", walletMiddleware.OptionalIdentity(), communityController.GetCommunity)
		communities.GET("/:slug/members", communityController.GetMembers)
		communities.GET("/:slug/activity", communityController.GetActivity)
		communities.GET("/:slug/analytics", communityController.GetAnalytics)
		communities.GET("/:slug/posts", postController.ListPosts)

		communitiesAuthed := communities.Group("")
		communitiesAuthed.Use(walletMiddleware.RequireIdentity())
		{
			communitiesAuthed.POST("", communityController.CreateCommunity)
			communitiesAuthed.PUT("/:slug/rules", communityController.UpdateRules)
			communitiesAuthed.POST("/:slug/join", communityController.JoinCommunity)
			communitiesAuthed.POST("/:slug/leave", communityController.LeaveCommunity)
			communitiesAuthed.POST("/:slug/posts", postController.CreatePost)
		}
	}

	// --- Posts and comments ---
	posts := api.Group("/posts")
	{
		posts.GET("/:id", postController.GetPost)
		posts.GET("/:id/comments", postController.ListComments)

		postsAuthed := posts.Group("")
		postsAuthed.Use(walletMiddleware.RequireIdentity())
		{
			postsAuthed.DELETE("/:id", postController.DeletePost)
			postsAuthed.POST("/:id/comments", postController.CreateComment)
		}
	}

	// --- Direct messages ---
	conversations := api.Group("/conversations")
	conversations.Use(walletMiddleware.RequireIdentity())
	{
		conversations.GET("", messageController.ListConversations)
		conversations.POST("", messageController.OpenConversation)
		conversations.GET("/:id", messageController.GetConversation)
		conversations.POST("/:id/messages", messageController.SendMessage)
	}
}
