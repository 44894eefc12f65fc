package repository

import (
	"github.com/prosync/prosync-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and their profile within a single
	// transaction. Every user must have a profile; this is the only
	// constructor for the pair.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// FindByUserID finds the profile belonging to a user
	FindByUserID(userID uint64) (*models.Profile, error)

	// Update persists changes to a profile
	Update(profile *models.Profile) error

	// Search lists profiles matching the query across full name, username
	// and profession
	Search(query string, offset, limit int) ([]models.Profile, int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindBySlug finds a project by its slug
	FindBySlug(slug string) (*models.Project, error)

	// SlugExists reports whether a slug is already taken
	SlugExists(slug string) (bool, error)

	// ListByOwner lists all projects owned by a user
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// Search lists public projects matching the query across name,
	// technology and description
	Search(query string, offset, limit int) ([]models.Project, int64, error)

	// CountByOwner counts the projects a user owns
	CountByOwner(ownerID uint64) (int64, error)

	// Update persists changes to a project
	Update(project *models.Project) error

	// Delete removes a project and everything hanging off it (posts,
	// collaborations, invitations, saved markers) in one transaction
	Delete(id uint64) error

	// ListCollaborators lists the collaborations of a project with users
	ListCollaborators(projectID uint64) ([]models.Collaboration, error)

	// GetOrCreateCollaboration atomically ensures a collaboration exists
	// for (project, user), reporting whether it was created
	GetOrCreateCollaboration(projectID, userID uint64, role string) (bool, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create creates a new post
	Create(post *models.Post) error

	// FindByID finds a post by ID with author and project preloaded
	FindByID(id uint64) (*models.Post, error)

	// ListVisible lists posts visible to the viewer, newest first.
	// viewerID of zero means an anonymous viewer.
	ListVisible(viewerID uint64, offset, limit int) ([]models.Post, int64, error)

	// ListByProject lists the posts attached to a project, newest first
	ListByProject(projectID uint64) ([]models.Post, error)

	// Delete removes a post and its dependent records
	Delete(id uint64) error

	// CreateComment appends a comment to a post
	CreateComment(comment *models.Comment) error

	// ListComments lists a post's comments, newest first
	ListComments(postID uint64) ([]models.Comment, error)

	// CountLikes counts the likes on a post
	CountLikes(postID uint64) (int64, error)

	// CountComments counts the comments on a post
	CountComments(postID uint64) (int64, error)
}

// RelationshipRepository defines the interface for the toggleable join
// records: likes, saved posts, saved projects and follow edges. Every toggle
// is an atomic insert-or-conflict against the composite primary key followed
// by a delete when the row already existed; there is deliberately no
// read-then-write variant.
type RelationshipRepository interface {
	ToggleLike(postID, userID uint64) (bool, error)
	ToggleSavedPost(userID, postID uint64) (bool, error)
	ToggleSavedProject(userID, projectID uint64) (bool, error)
	ToggleFollower(followerID, followingID uint64) (bool, error)

	HasLike(postID, userID uint64) (bool, error)
	HasSavedPost(userID, postID uint64) (bool, error)
	HasSavedProject(userID, projectID uint64) (bool, error)
	IsFollowing(followerID, followingID uint64) (bool, error)

	CountFollowers(userID uint64) (int64, error)
	CountFollowing(userID uint64) (int64, error)

	ListSavedPosts(userID uint64) ([]models.SavedPost, error)
	ListSavedProjects(userID uint64) ([]models.SavedProject, error)
}

// ConnectionRepository defines the interface for connection request data access
type ConnectionRepository interface {
	// Create creates a new connection request
	Create(request *models.ConnectionRequest) error

	// FindByID finds a connection request by ID
	FindByID(id uint64) (*models.ConnectionRequest, error)

	// FindBetween finds the single request between two users, regardless of
	// direction
	FindBetween(userA, userB uint64) (*models.ConnectionRequest, error)

	// Update persists changes to a connection request
	Update(request *models.ConnectionRequest) error

	// ListPendingForReceiver lists pending requests addressed to a user
	ListPendingForReceiver(receiverID uint64) ([]models.ConnectionRequest, error)
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation
	Create(invitation *models.Invitation) error

	// FindByID finds an invitation by ID with its project preloaded
	FindByID(id uint64) (*models.Invitation, error)

	// FindByProjectAndReceiver finds the invitation for a (project, receiver)
	// pair
	FindByProjectAndReceiver(projectID, receiverID uint64) (*models.Invitation, error)

	// Update persists changes to an invitation
	Update(invitation *models.Invitation) error

	// AcceptWithCollaboration marks the invitation accepted and ensures the
	// collaboration exists, in a single transaction
	AcceptWithCollaboration(invitation *models.Invitation, role string) error

	// ListPendingForReceiver lists pending invitations addressed to a user
	ListPendingForReceiver(receiverID uint64) ([]models.Invitation, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create appends a notification
	Create(notification *models.Notification) error

	// ListByReceiver lists a user's notifications, newest first
	ListByReceiver(receiverID uint64, unreadOnly bool, offset, limit int) ([]models.Notification, int64, error)

	// MarkRead flips the read flag on one of the receiver's notifications
	MarkRead(id, receiverID uint64) error

	// MarkAllRead flips the read flag on all of the receiver's notifications
	MarkAllRead(receiverID uint64) error
}

// ChatRepository defines the interface for chat message data access
type ChatRepository interface {
	// Create appends a chat message
	Create(message *models.ChatMessage) error

	// Conversation lists the messages between two users, oldest first
	Conversation(userID, otherID uint64) ([]models.ChatMessage, error)

	// MarkConversationRead marks messages from other to user as read
	MarkConversationRead(userID, otherID uint64) error

	// ListForUser lists all messages a user sent or received, newest first
	ListForUser(userID uint64) ([]models.ChatMessage, error)
}
