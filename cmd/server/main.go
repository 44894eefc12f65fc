package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prosync/prosync-api/internal/config"
	"github.com/prosync/prosync-api/internal/database"
	"github.com/prosync/prosync-api/internal/handlers"
	"github.com/prosync/prosync-api/internal/middleware"
	"github.com/prosync/prosync-api/internal/repository"
	"github.com/prosync/prosync-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	postRepo := repository.NewPostRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Services
	mailer := services.NewLogMailer(cfg.MailFrom)
	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, profileRepo, mailer, cfg.JWTSecret, cfg.TokenDuration)
	profileService := services.NewProfileService(profileRepo, userRepo, projectRepo, relationshipRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	postService := services.NewPostService(postRepo, projectRepo, userRepo, notificationService)
	relationshipService := services.NewRelationshipService(relationshipRepo, userRepo, postRepo, projectRepo, notificationService)
	connectionService := services.NewConnectionService(connectionRepo, userRepo, notificationService)
	invitationService := services.NewInvitationService(invitationRepo, projectRepo, userRepo, notificationService)
	chatService := services.NewChatService(chatRepo, userRepo)

	// Handlers
	handlers.RegisterValidators()
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, relationshipService, connectionService)
	projectHandler := handlers.NewProjectHandler(projectService, invitationService, relationshipService)
	postHandler := handlers.NewPostHandler(postService, relationshipService)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	chatHandler := handlers.NewChatHandler(chatService)

	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "ProSync API is running",
		})
	})

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/signin", authHandler.Signin)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		// Profile routes; reads are public, the connection status in the
		// response varies by viewer
		profiles := api.Group("/profiles")
		{
			profiles.GET("", optionalAuth, profileHandler.Search)
			profiles.GET("/me", requireAuth, profileHandler.Me)
			profiles.PATCH("/me", requireAuth, profileHandler.UpdateMe)
			profiles.GET("/:id", optionalAuth, profileHandler.Get)
			profiles.POST("/:id/follow", requireAuth, profileHandler.Follow)
			profiles.POST("/:id/connect", requireAuth, profileHandler.Connect)
		}

		// Project routes
		projects := api.Group("/projects")
		{
			projects.GET("/search", projectHandler.Search)
			projects.GET("/slug/:slug", projectHandler.GetBySlug)
			projects.GET("/mine", requireAuth, projectHandler.Mine)
			projects.GET("/saved", requireAuth, projectHandler.Saved)
			projects.POST("", requireAuth, projectHandler.Create)
			projects.GET("/:id", projectHandler.Get)
			projects.PATCH("/:id", requireAuth, projectHandler.Update)
			projects.DELETE("/:id", requireAuth, projectHandler.Delete)
			projects.GET("/:id/collaborators", projectHandler.Collaborators)
			projects.POST("/:id/collaborators", requireAuth, projectHandler.AddCollaborator)
			projects.GET("/:id/posts", optionalAuth, postHandler.ByProject)
			projects.POST("/:id/invite", requireAuth, projectHandler.Invite)
			projects.POST("/:id/save", requireAuth, projectHandler.Save)
		}

		// Post routes; feed and reads respect per-viewer visibility
		posts := api.Group("/posts")
		{
			posts.GET("", optionalAuth, postHandler.List)
			posts.GET("/saved", requireAuth, postHandler.Saved)
			posts.POST("", requireAuth, postHandler.Create)
			posts.GET("/:id", optionalAuth, postHandler.Get)
			posts.DELETE("/:id", requireAuth, postHandler.Delete)
			posts.POST("/:id/like", requireAuth, postHandler.Like)
			posts.POST("/:id/save", requireAuth, postHandler.Save)
			posts.POST("/:id/comments", requireAuth, postHandler.Comment)
			posts.GET("/:id/comments", optionalAuth, postHandler.Comments)
		}

		// Connection request routes (protected)
		connections := api.Group("/connections")
		connections.Use(requireAuth)
		{
			connections.GET("/pending", connectionHandler.Pending)
			connections.POST("/:id/respond", connectionHandler.Respond)
		}

		// Invitation routes (protected)
		invitations := api.Group("/invitations")
		invitations.Use(requireAuth)
		{
			invitations.GET("/pending", invitationHandler.Pending)
			invitations.POST("/:id/respond", invitationHandler.Respond)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(requireAuth)
		{
			notifications.GET("", notificationHandler.Feed)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		// Direct message routes (protected)
		messages := api.Group("/messages")
		messages.Use(requireAuth)
		{
			messages.POST("", chatHandler.Send)
			messages.GET("/inbox", chatHandler.Inbox)
			messages.GET("/conversation/:id", chatHandler.Conversation)
		}
	}

	log.Printf("Starting server on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
