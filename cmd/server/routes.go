package main

import (
	"estate-market.backend/internal/interfaces/http/handlers"
	"estate-market.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	adminHandler    *handlers.AdminHandler
	messageHandler  *handlers.MessageHandler
	reviewHandler   *handlers.ReviewHandler
	propertyHandler *handlers.PropertyHandler
	reportHandler   *handlers.ReportHandler
	authMiddleware  gin.HandlerFunc
	optionalAuth    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/verify-email", d.authHandler.VerifyEmail)
			auth.POST("/resend-code", d.authHandler.ResendCode)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
		}

		// Property search (public; owners and admins also see hidden listings)
		v1.GET("/properties", d.propertyHandler.Search)
		v1.GET("/properties/:id", d.optionalAuth, d.propertyHandler.Get)

		// Public profile and reputation
		v1.GET("/users/:id", d.userHandler.GetPublicProfile)
		v1.GET("/users/:id/reviews", d.reviewHandler.ListForUser)
		v1.GET("/users/:id/rating", d.reviewHandler.Rating)

		// User routes (protected)
		users := v1.Group("/users/me")
		users.Use(d.authMiddleware)
		{
			users.GET("", d.authHandler.GetMe)
			users.PUT("", d.userHandler.UpdateProfile)
			users.POST("/change-password", d.userHandler.ChangePassword)
			users.POST("/id-document", d.userHandler.UploadIDDocument)
			users.GET("/id-document", d.userHandler.GetIDDocument)
		}

		// Property routes (protected)
		properties := v1.Group("/properties")
		properties.Use(d.authMiddleware)
		{
			properties.POST("", middleware.IdempotencyMiddleware(), d.propertyHandler.Create)
			properties.GET("/mine", d.propertyHandler.ListMine)
			properties.PUT("/:id", d.propertyHandler.Update)
			properties.POST("/:id/archive", d.propertyHandler.Archive)
			properties.POST("/:id/unarchive", d.propertyHandler.Unarchive)
			properties.DELETE("/:id", d.propertyHandler.Delete)
			properties.POST("/:id/media/:kind", d.propertyHandler.AddMedia)
			properties.DELETE("/:id/media/:kind/:index", d.propertyHandler.RemoveMedia)
		}

		// Messaging routes (protected)
		messages := v1.Group("/messages")
		messages.Use(d.authMiddleware)
		{
			messages.POST("", middleware.IdempotencyMiddleware(), d.messageHandler.Send)
			messages.GET("/inbox", d.messageHandler.Inbox)
			messages.GET("/sent", d.messageHandler.Sent)
			messages.GET("/partners", d.messageHandler.ChatPartners)
			messages.GET("/unread-count", d.messageHandler.UnreadCount)
			messages.GET("/search", d.messageHandler.Search)
			messages.GET("/contacted/:userId", d.messageHandler.HasContacted)
			messages.GET("/conversations/:userId", d.messageHandler.Conversation)
			messages.POST("/conversations/:userId/read", d.messageHandler.MarkConversationRead)
			messages.DELETE("/conversations/:userId", d.messageHandler.DeleteConversation)
		}

		blocks := v1.Group("/blocks")
		blocks.Use(d.authMiddleware)
		{
			blocks.GET("", d.messageHandler.ListBlocks)
			blocks.POST("/:userId", d.messageHandler.Block)
			blocks.DELETE("/:userId", d.messageHandler.Unblock)
		}

		// Review routes (protected)
		reviews := v1.Group("/reviews")
		reviews.Use(d.authMiddleware)
		{
			reviews.POST("", middleware.IdempotencyMiddleware(), d.reviewHandler.AddReview)
			reviews.GET("/contacted", d.reviewHandler.ContactedUsers)
		}

		// Report routes (protected)
		reports := v1.Group("/reports")
		reports.Use(d.authMiddleware)
		{
			reports.POST("", middleware.IdempotencyMiddleware(), d.reportHandler.Create)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.Stats)

			admin.GET("/users", d.adminHandler.ListUsers)
			admin.GET("/users/pending-approval", d.adminHandler.ListPendingApproval)
			admin.GET("/users/id-pending", d.adminHandler.ListIDPending)
			admin.GET("/users/unverified", d.adminHandler.ListUnverified)
			admin.GET("/users/:id", d.adminHandler.GetUser)
			admin.GET("/users/:id/id-document", d.adminHandler.GetIDDocument)
			admin.GET("/users/:id/reports", d.reportHandler.ForUser)
			admin.POST("/users/:id/verify", d.adminHandler.VerifyUser)
			admin.POST("/users/:id/approve", d.adminHandler.ApproveUser)
			admin.POST("/users/:id/reject", d.adminHandler.RejectUser)

			admin.GET("/admins/unverified", d.adminHandler.ListUnverifiedAdmins)
			admin.POST("/admins/:id/verify", d.adminHandler.VerifyAdmin)

			admin.GET("/properties", d.propertyHandler.AdminList)
			admin.GET("/properties/unverified", d.propertyHandler.AdminListUnverified)
			admin.GET("/properties/:id/reports", d.reportHandler.ForProperty)
			admin.POST("/properties/:id/verify", d.propertyHandler.Verify)
			admin.POST("/properties/:id/unverify", d.propertyHandler.Unverify)
			admin.DELETE("/properties/:id", d.propertyHandler.Delete)

			admin.GET("/reports", d.reportHandler.List)
			admin.GET("/reports/pending", d.reportHandler.ListPending)
			admin.GET("/reports/:id", d.reportHandler.Get)
			admin.POST("/reports/:id/review", d.reportHandler.MarkReviewed)
			admin.POST("/reports/:id/resolve", d.reportHandler.Resolve)
			admin.POST("/reports/:id/dismiss", d.reportHandler.Dismiss)
		}
	}
}
