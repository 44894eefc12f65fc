package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prosync/prosync-api/internal/database"
	"github.com/prosync/prosync-api/internal/middleware"
	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"github.com/prosync/prosync-api/internal/services"
	"github.com/prosync/prosync-api/internal/token"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine

	authService *services.AuthService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Project{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
		&models.SavedProject{},
		&models.Follower{},
		&models.Collaboration{},
		&models.ConnectionRequest{},
		&models.Invitation{},
		&models.Notification{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)
	require.NoError(t, database.EnsurePairIndexes(db))
	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	postRepo := repository.NewPostRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	chatRepo := repository.NewChatRepository(db)

	mailer := services.NewLogMailer("test@example.com")
	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, profileRepo, mailer, testJWTSecret, time.Hour)
	profileService := services.NewProfileService(profileRepo, userRepo, projectRepo, relationshipRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	postService := services.NewPostService(postRepo, projectRepo, userRepo, notificationService)
	relationshipService := services.NewRelationshipService(relationshipRepo, userRepo, postRepo, projectRepo, notificationService)
	connectionService := services.NewConnectionService(connectionRepo, userRepo, notificationService)
	invitationService := services.NewInvitationService(invitationRepo, projectRepo, userRepo, notificationService)
	chatService := services.NewChatService(chatRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService, relationshipService, connectionService)
	projectHandler := NewProjectHandler(projectService, invitationService, relationshipService)
	postHandler := NewPostHandler(postService, relationshipService)
	connectionHandler := NewConnectionHandler(connectionService)
	invitationHandler := NewInvitationHandler(invitationService)
	notificationHandler := NewNotificationHandler(notificationService)
	chatHandler := NewChatHandler(chatService)

	requireAuth := middleware.RequireAuth(testJWTSecret)
	optionalAuth := middleware.OptionalAuth(testJWTSecret)

	r := gin.New()
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/signin", authHandler.Signin)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", requireAuth, authHandler.Me)
		}
		profiles := api.Group("/profiles")
		{
			profiles.GET("", optionalAuth, profileHandler.Search)
			profiles.GET("/me", requireAuth, profileHandler.Me)
			profiles.PATCH("/me", requireAuth, profileHandler.UpdateMe)
			profiles.GET("/:id", optionalAuth, profileHandler.Get)
			profiles.POST("/:id/follow", requireAuth, profileHandler.Follow)
			profiles.POST("/:id/connect", requireAuth, profileHandler.Connect)
		}
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
		connections := api.Group("/connections")
		connections.Use(requireAuth)
		{
			connections.GET("/pending", connectionHandler.Pending)
			connections.POST("/:id/respond", connectionHandler.Respond)
		}
		invitations := api.Group("/invitations")
		invitations.Use(requireAuth)
		{
			invitations.GET("/pending", invitationHandler.Pending)
			invitations.POST("/:id/respond", invitationHandler.Respond)
		}
		notifications := api.Group("/notifications")
		notifications.Use(requireAuth)
		{
			notifications.GET("", notificationHandler.Feed)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}
		messages := api.Group("/messages")
		messages.Use(requireAuth)
		{
			messages.POST("", chatHandler.Send)
			messages.GET("/inbox", chatHandler.Inbox)
			messages.GET("/conversation/:id", chatHandler.Conversation)
		}
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

// signupUser registers a user through the service and returns the user and a
// bearer token for requests on their behalf.
func (env testEnv) signupUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	user, err := env.authService.Signup(services.SignupInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "supersecret",
		FullName: username,
	})
	require.NoError(t, err)

	signed, err := token.Sign(testJWTSecret, user.ID, time.Hour)
	require.NoError(t, err)
	return user, signed
}

func (env testEnv) request(t *testing.T, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
