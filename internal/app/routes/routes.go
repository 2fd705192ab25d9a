package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/cid2105/virtual-greek/internal/app/controllers"
	"github.com/cid2105/virtual-greek/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	chapterController *controllers.ChapterController,
	profileController *controllers.ProfileController,
	topicController *controllers.TopicController,
	mailboxController *controllers.MailboxController,
	feedController *controllers.FeedController,
	galleryController *controllers.GalleryController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	// Everything else requires a valid token and an attached member profile.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Chapter directory and board administration
		chapter := authenticated.Group("/chapter")
		{
			chapter.GET("", chapterController.GetDirectory)
			chapter.PUT("", chapterController.UpdateChapter)
			chapter.PUT("/board", chapterController.SetOfficer)
			chapter.PUT("/members/:profileId/status", chapterController.SetMemberStatus)
		}

		// Member profiles
		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/me", profileController.GetMyProfile)
			profiles.PUT("/me", profileController.UpdateProfile)
			profiles.POST("/me/positions", profileController.AddPosition)
			profiles.PUT("/me/positions", profileController.UpdatePosition)
			profiles.PUT("/me/canvas", profileController.SaveCanvas)
			profiles.POST("/me/avatar", profileController.UploadAvatar)
			profiles.POST("/me/resume", profileController.UploadResume)
			profiles.GET("/lookup", profileController.LookupMembers)
			profiles.GET("/:profileId", profileController.GetProfile)
		}

		// Discussion topics and replies
		topics := authenticated.Group("/topics")
		{
			topics.GET("", topicController.ListTopics)
			topics.POST("", topicController.CreateTopic)
			topics.GET("/:topicId/replies", topicController.GetTopicReplies)
			topics.POST("/:topicId/replies", topicController.Reply)
		}
		replies := authenticated.Group("/replies")
		{
			replies.POST("/vote", topicController.Vote)
			replies.DELETE("/:replyId", topicController.DeleteReply)
		}

		// Private mailbox
		mailbox := authenticated.Group("/mailbox")
		{
			mailbox.POST("/messages", mailboxController.SendMessage)
			mailbox.GET("/conversations", mailboxController.ListConversations)
			mailbox.GET("/conversations/:conversationId", mailboxController.GetConversation)
			mailbox.POST("/conversations/:conversationId/read", mailboxController.MarkRead)
		}

		// Announcement feed, addressed by university and organization slug
		feed := authenticated.Group("/feed")
		{
			feed.GET("/:university/:organization", feedController.GetFeed)
			feed.POST("/announcements", feedController.CreateAnnouncement)
			feed.GET("/hashtags", feedController.GetHashtags)
		}

		// Photo gallery
		gallery := authenticated.Group("/gallery")
		{
			gallery.GET("", galleryController.GetGallery)
			gallery.POST("/albums", galleryController.CreateAlbum)
			gallery.GET("/albums/:albumId", galleryController.GetAlbum)
			gallery.POST("/photos/:photoId/tags", galleryController.TagPhoto)
		}
	}
}
