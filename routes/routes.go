package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gsq7474741/Rubbish/controllers"
	"github.com/gsq7474741/Rubbish/middleware"
	"github.com/gsq7474741/Rubbish/models"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "RubbishReview API is running",
				})
			})
		}

		// Public reads. OptionalAuth lets a logged-in viewer see their own
		// identity through the anonymization layer.
		reads := v1.Group("")
		reads.Use(middleware.OptionalAuth())
		{
			reads.GET("/papers", controllers.GetPapers)
			reads.GET("/search", controllers.SearchPapers)
			reads.GET("/papers/:id", controllers.GetPaper)
			reads.GET("/papers/:id/reviews", controllers.GetReviews)
			reads.GET("/papers/:id/reviews/:review_id/rebuttals", controllers.GetRebuttals)
			reads.GET("/papers/:id/comments", controllers.GetComments)

			reads.GET("/venues", controllers.GetVenues)
			reads.GET("/venues/:slug", controllers.GetVenue)
			reads.GET("/activity", controllers.GetActivity)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/me", controllers.GetMe)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Papers
			protected.POST("/papers", controllers.CreatePaper)
			protected.PATCH("/papers/:id", controllers.UpdatePaper)
			protected.POST("/papers/:id/withdraw", controllers.WithdrawPaper)

			// Reviews & rebuttals
			protected.POST("/papers/:id/reviews", controllers.CreateReview)
			protected.POST("/papers/:id/reviews/:review_id/rebuttals", controllers.CreateRebuttal)

			// Comments
			protected.POST("/papers/:id/comments", controllers.CreateComment)

			// Votes
			protected.POST("/vote", controllers.CastVote)

			// Notifications
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PATCH("/notifications/read", controllers.MarkNotificationsRead)

			// Venues
			protected.POST("/venues", controllers.CreateVenue)

			// Invite codes (instant-mode submissions)
			protected.GET("/invite-codes", controllers.GetInviteCodes)
			protected.POST("/invite-codes", controllers.CreateInviteCode)
			protected.POST("/invite-codes/verify", controllers.VerifyInviteCode)

			// Moderation
			protected.POST("/reports", controllers.CreateReport)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleContentAdmin, models.RoleSystemAdmin))
			{
				admin.GET("/reports", controllers.GetReports)
				admin.PATCH("/reports/:id", controllers.ResolveReport)
			}
		}
	}
}
